// transfer.go implements "tagidx index export" and "tagidx index import".
//
// Design: The file format follows the extension: .json is JSON, anything
// else YAML. Import is all-or-nothing and skips ids already catalogued, so
// re-importing the same file is harmless.

package index

import (
	"fmt"
	"io"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/exporter"
	"github.com/jpl-au/tagidx/internal/importer"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file>",
		Short: "Export indices to a YAML or JSON file",
		Long: `Export active indices, with the catalogue's limits, to a file.

  tagidx index export indices.yaml
  tagidx index export links.json --tag Link

An existing file is only overwritten with --force.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().String(extension.FlagTag, "", "Only indices carrying all of these tags")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	opts := exporter.Options{}
	opts.Tags, _ = c.Flags().GetString(extension.FlagTag)
	opts.Force = cmd.Force()

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, dst, opts)

	log.Event("index:export", "export").Author(cmd.Author()).Tags(opts.Tags).Detail("path", dst).Detail("count", result.Exported).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index export: %w", err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Import indices from a YAML or JSON file",
		Long: `Import indices from a file written by "index export".

Every tag set is checked against this catalogue's limits before anything is
written. Ids already in the catalogue are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	opts := importer.Options{Author: cmd.Author()}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(c.Context(), w, e.svc, src, opts)

	log.Event("index:import", "import").Author(cmd.Author()).Detail("path", src).Detail("count", result.Imported).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index import: %w", err))
	}
	return cmd.PrintJSON(result)
}
