// commands.go implements the "tagidx tag" command and its subcommands.

package tag

import (
	"fmt"
	"io"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/diff"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/tag"
	"github.com/spf13/cobra"
)

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage index tags",
		Long: `Add, remove, list and compare the tags of indices.

Indices are named by full id or a unique prefix of at least four hex digits.
Tag lists are comma-separated; a change that would overflow the index's tag
set, or remove a tag it lacks, fails without touching the index.

  tagidx tag add 3f2a "Link,n=1"
  tagidx tag rm 3f2a Link
  tagidx tag ls              # every tag in use, with counts
  tagidx tag diff 3f2a 9c01
  tagidx tag log 3f2a        # tag history of an index`,
	}
	c.AddCommand(e.newTagAddCmd())
	c.AddCommand(e.newTagRmCmd())
	c.AddCommand(e.newTagLsCmd())
	c.AddCommand(e.newTagDiffCmd())
	c.AddCommand(e.newTagLogCmd())
	return c
}

func (e *Extension) newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <tags>",
		Short: "Add tags to an index",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runTagAdd,
	}
}

func (e *Extension) newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> <tags>",
		Short: "Remove tags from an index",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runTagRm,
	}
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [id]",
		Short: "List tags of an index (or all tags in use if id omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runTagLs,
	}
}

func (e *Extension) newTagDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <id> <id>",
		Short: "Show how the tags of two indices differ",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runTagDiff,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

func (e *Extension) newTagLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <id>",
		Short: "Show the tag history of an index",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTagLog,
	}
}

// out returns the writer for human output, silenced under -o json.
func out() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func (e *Extension) runTagAdd(c *cobra.Command, args []string) error {
	id, tags := args[0], args[1]

	l := log.Event("tag:add", "tag").
		Author(cmd.Author()).
		Index(id).
		Tags(tags)

	result, err := tag.Add(c.Context(), out(), e.svc, id, tags, cmd.Author())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag add %q %q: %w", id, tags, err))
	}

	l.Resolved(result.ID).Result(joinTags(result.Tags)).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagRm(c *cobra.Command, args []string) error {
	id, tags := args[0], args[1]

	l := log.Event("tag:rm", "untag").
		Author(cmd.Author()).
		Index(id).
		Tags(tags)

	result, err := tag.Remove(c.Context(), out(), e.svc, id, tags, cmd.Author())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag rm %q %q: %w", id, tags, err))
	}

	l.Resolved(result.ID).Result(joinTags(result.Tags)).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	l := log.Event("tag:ls", "list_tags").
		Author(cmd.Author()).
		Index(id)

	result, err := tag.List(c.Context(), out(), e.svc, id)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag ls %q: %w", id, err))
	}

	l.Resolved(result.ID).
		Detail("count", len(result.Tags)).
		Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagDiff(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	a, b := args[0], args[1]

	r, err := tag.Diff(c.Context(), out(), e.svc, a, b, diff.Colour(raw))

	log.Event("tag:diff", "diff").
		Author(cmd.Author()).
		Index(a).
		Detail("other", b).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag diff %q %q: %w", a, b, err))
	}
	return cmd.PrintJSON(r)
}

func (e *Extension) runTagLog(c *cobra.Command, args []string) error {
	ctx := c.Context()

	entry, err := e.svc.Resolve(ctx, args[0], true)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag log %q: %w", args[0], err))
	}
	id := entry.Index.ID.String()

	changes, err := history(ctx, e.svc.DB(), id)

	log.Event("tag:log", "history").
		Author(cmd.Author()).
		Index(args[0]).
		Resolved(id).
		Detail("count", len(changes)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag log %q: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(changes)
	}
	if len(changes) == 0 {
		fmt.Fprintf(cmd.Out(), "No tag history for %s\n", entry.Index)
		return nil
	}
	for _, ch := range changes {
		fmt.Fprintln(cmd.Out(), ch.line())
	}
	return nil
}
