// Package all imports all core tagidx extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/tagidx/extension/core"
	_ "github.com/jpl-au/tagidx/extension/index"
	_ "github.com/jpl-au/tagidx/extension/set"
	_ "github.com/jpl-au/tagidx/extension/tag"
)
