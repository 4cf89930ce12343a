/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that opens the
// catalogue, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern lets extensions declare
// commands before a catalogue exists. The catalogue is opened once and
// shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/repo"
)

// noStoreCommands lists commands that bypass automatic catalogue opening.
// Built from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists the commands that change the catalogue,
// keyed by their path below the root.
var authorRequiredCommands = map[string]bool{
	"index new":     true,
	"index link":    true,
	"index sim":     true,
	"index prime":   true,
	"index rm":      true,
	"index restore": true,
	"index import":  true,
	"tag add":       true,
	"tag rm":        true,
	"vacuum":        true,
}

// buildNoStoreCommands creates the set of commands that skip catalogue
// opening: the bootstrap commands, which must work before "tagidx init",
// plus whatever extensions declare through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"llm":        true,
		"help":       true,
		"completion": true,
		rootCmd.Name(): true, // bare "tagidx" prints help
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// OpenCatalogue opens the catalogue selected by --dir and --db. With --dir
// the catalogue must exist at that exact location; otherwise it is
// discovered by walking up from the working directory.
func OpenCatalogue() (*catalog.Service, error) {
	d := Dir()
	if d == "" {
		return catalog.New(DB())
	}
	path := filepath.Join(d, repo.Dir, repo.DBFileName(DB()))
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", repo.ErrNotInitialised, path)
	}
	return catalog.Open(path)
}

// initExtensions opens the catalogue and injects it into extensions.
//
// sync.Once guarantees a single connection per process. A missing catalogue
// surfaces as repo.ErrNotInitialised, which tells the user to run init.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := OpenCatalogue()
		if err != nil {
			initErr = fmt.Errorf("opening catalogue: %w", err)
			return
		}
		extService = svc

		if abs, err := filepath.Abs(svc.DBPath()); err == nil {
			log.SetProject(filepath.Dir(abs))
		}

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
