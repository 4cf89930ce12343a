// Package index provides the index extension for catalogue operations.
// It registers the index command with subcommands: new, link, sim, ls, show,
// prime, rm, restore, common, stats, export, import.
//
// Each subcommand file isolates its own flag handling and output formatting.
// Indices are named by full id or by a unique prefix of at least four hex
// digits.
package index

import (
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the index extension.
type Extension struct {
	svc    service.Service
	limits tagset.Limits
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "index".
func (e *Extension) Name() string { return "index" }

// Init connects to the shared catalogue.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.limits = ctx.Limits()
	return nil
}

// Commands returns the index command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "index",
		Short: "Create, list and manage indices",
		Long: `Create, list and manage the indices in the catalogue.

An index has a dimension, a prime level, a unique id and a sorted set of
tags bounded by the catalogue's limits.

  tagidx index new 3 "Site,n=1"
  tagidx index link 2
  tagidx index ls --tag Site --long
  tagidx index prime 3f2a`,
	}
	c.AddCommand(
		e.newNewCmd(),
		e.newLinkCmd(),
		e.newSimCmd(),
		e.newLsCmd(),
		e.newShowCmd(),
		e.newPrimeCmd(),
		e.newRmCmd(),
		e.newRestoreCmd(),
		e.newCommonCmd(),
		e.newStatsCmd(),
		e.newExportCmd(),
		e.newImportCmd(),
	)
	return []*cobra.Command{c}
}

// MCPTools returns nil. Index MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
