// serve.go implements the "tagidx serve" command.
//
// Design: serve is a NoStoreCommand. It blocks handling MCP requests over
// stdio and owns its catalogue for the lifetime of the server, so it may
// start before "tagidx init" and create the catalogue through tagidx_init.

package core

import (
	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific catalogue:
  tagidx serve --db mps    # serve tagidx-mps.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.DB())
		},
	}
}
