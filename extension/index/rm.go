// rm.go implements "tagidx index rm" and "tagidx index restore".
//
// Design: Deletion is soft. Indices stay in the catalogue, hidden from
// listings, until restored or vacuumed.

package index

import (
	"fmt"
	"io"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm [ids...]",
		Short: "Delete indices (soft delete)",
		Long: `Soft-delete indices by id, or every index carrying the tags given with --tag.

Deleted indices can be listed with "index ls -D", restored with
"index restore" and removed for good with "vacuum".`,
		RunE: e.runRm,
	}
	c.Flags().String(extension.FlagTag, "", "Delete every index carrying all of these tags")
	return c
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	opts := rm.Options{}
	opts.Tags, _ = c.Flags().GetString(extension.FlagTag)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := rm.Run(c.Context(), w, e.svc, args, opts)

	l := log.Event("index:rm", "delete").Author(cmd.Author()).Tags(opts.Tags).Detail("count", len(result.Deleted))
	if len(args) > 0 {
		l.Index(args[0])
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index rm: %w", err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a deleted index",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRestore,
	}
}

func (e *Extension) runRestore(c *cobra.Command, args []string) error {
	id := args[0]

	en, err := e.svc.Restore(c.Context(), id)

	l := log.Event("index:restore", "restore").Author(cmd.Author()).Index(id)
	if en != nil {
		l.Resolved(en.Index.ID.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index restore %q: %w", id, err))
	}
	return created(cmd.Out(), "Restored", en)
}
