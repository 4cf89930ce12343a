// ls.go implements "tagidx index ls" and "tagidx index show".
//
// Separated from index.go to isolate listing, filtering and formatting
// flags.
//
// Design: --tag takes a comma-separated set and matches indices carrying all
// of it. --dim narrows to one dimension. -t groups by tag and -l adds
// metadata, so the same listing serves quick scans and audits.

package index

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/format"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List indices",
		Long: `List indices in creation order, optionally filtered by tags or dimension.

  tagidx index ls --tag Site,n=1
  tagidx index ls --dim 2 --long
  tagidx index ls --tree`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include deleted indices")
	c.Flags().BoolP(extension.FlagDeleted, "D", false, "Show only deleted indices")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Group by tag")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with metadata")
	c.Flags().Bool(extension.FlagCount, false, "Print only the number of indices")
	c.Flags().String(extension.FlagTag, "", "Only indices carrying all of these tags")
	c.Flags().Int(extension.FlagDim, 0, "Only indices of this dimension")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: time, tags, dim")
	c.Flags().BoolP(extension.FlagReverse, "R", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	opts := ls.Options{}
	opts.IncludeAll, _ = c.Flags().GetBool(extension.FlagAll)
	opts.DeletedOnly, _ = c.Flags().GetBool(extension.FlagDeleted)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Tags, _ = c.Flags().GetString(extension.FlagTag)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)
	count, _ := c.Flags().GetBool(extension.FlagCount)

	if c.Flags().Changed(extension.FlagDim) {
		dim, _ := c.Flags().GetInt(extension.FlagDim)
		opts.Dim = &dim
	}

	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	opts.Sort = ls.SortField(sortBy)
	if sortBy != "" && !slices.Contains(ls.SortFields, opts.Sort) {
		names := make([]string, len(ls.SortFields))
		for i, f := range ls.SortFields {
			names[i] = string(f)
		}
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q: must be one of %s", sortBy, strings.Join(names, ", ")))
	}

	w := cmd.Out()
	if cmd.JSON() || count {
		w = io.Discard
	}

	result, err := ls.Run(ctx, w, e.svc, opts)

	log.Event("index:ls", "list").
		Author(cmd.Author()).
		Tags(opts.Tags).
		Detail("count", result.Count()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index ls: %w", err))
	}
	if count {
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]int{"count": result.Count()})
		}
		fmt.Fprintln(cmd.Out(), result.Count())
		return nil
	}
	return cmd.PrintJSON(result.ToJSON())
}

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an index with its metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Also resolve deleted indices")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id := args[0]
	all, _ := c.Flags().GetBool(extension.FlagAll)

	en, err := e.svc.Resolve(c.Context(), id, all)

	l := log.Event("index:show", "read").Author(cmd.Author()).Index(id)
	if en != nil {
		l.Resolved(en.Index.ID.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index show %q: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(en.ToJSON())
	}
	return format.Show(cmd.Out(), *en)
}
