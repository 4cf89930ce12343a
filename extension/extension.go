// Package extension provides the plugin architecture for tagidx. Extensions
// bundle related commands and MCP tools and register at init time, so a new
// command family never has to touch the root command or the MCP server.
package extension

import (
	"time"

	"github.com/spf13/cobra"
)

// Extension defines the contract for tagidx extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions run setup once the catalogue is open, such as
// creating tables of their own.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a catalogue. Commands returned by NoStoreCommands() will
// not trigger catalogue initialisation in PersistentPreRunE.
//
// Use cases:
//  1. Bootstrap commands (like init) that run before a catalogue exists
//  2. Commands that manage their own service lifecycle (serve, vacuum)
//  3. Commands that only work on tag text (set)
type Storeless interface {
	NoStoreCommands() []string
}

// Vacuumable extensions clean up rows of their own when soft-deleted
// indices are purged. The vacuum command calls Vacuum on every extension
// implementing this interface after vacuuming the core tables.
type Vacuumable interface {
	Extension
	// Vacuum permanently deletes the extension's rows belonging to indices
	// soft-deleted longer ago than olderThan (all of them when nil).
	// Returns the count of rows deleted.
	Vacuum(ctx Context, olderThan *time.Duration) (int64, error)
}
