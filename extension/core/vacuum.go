// vacuum.go implements the "tagidx vacuum" command for permanent deletion.
//
// Separated from extension.go because vacuum is destructive and needs a
// confirmation prompt and dry-run support.
//
// Design: vacuum is a NoStoreCommand and opens its own catalogue, so the
// extension context it hands to Vacuumable extensions carries the same
// connection the purge ran on.

package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/duration"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/vacuum"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete soft-deleted indices",
		Long: `Permanently delete soft-deleted indices.

This is irreversible. Use --force to skip confirmation.

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months), 1y (years)`,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only purge deletions older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{DryRun: dryRun}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	svc, err := cmd.OpenCatalogue()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open catalogue: %w", err))
	}
	defer svc.Close()

	if !dryRun && !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Permanently delete soft-deleted indices? This cannot be undone. [y/N] ")
		response, err := bufio.NewReader(c.InOrStdin()).ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	// JSON output replaces the human report.
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := vacuum.Run(ctx, w, svc, opts)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Detail("dry_run", dryRun).
		Detail("older_than", olderThan).
		Detail("count", result.Deleted).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	if dryRun {
		return cmd.PrintJSON(result)
	}

	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	extCtx := extension.NewContext(svc, svc.DB(), cfg)
	for _, ext := range extension.All() {
		v, ok := ext.(extension.Vacuumable)
		if !ok {
			continue
		}
		count, err := v.Vacuum(extCtx, opts.OlderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("vacuum extension %s: %w", ext.Name(), err))
		}
		if count > 0 && !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "Vacuumed %d row(s) from %s\n", count, ext.Name())
		}
	}

	return cmd.PrintJSON(result)
}
