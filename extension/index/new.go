// new.go implements "tagidx index new", "index link" and "index sim", the
// commands that catalogue a new index.

package index

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dim> [tags]",
		Short: "Catalogue a new index",
		Long: `Catalogue a new index of the given dimension with comma-separated tags.

Tags are trimmed, deduplicated and sorted. More tags than the catalogue
allows, or a tag longer than its length limit, is an error.

  tagidx index new 2 "Site,n=1"
  tagidx index new 4`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runNew,
	}
}

func (e *Extension) newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <dim>",
		Short: "Catalogue a new link index (tagged Link)",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runLink,
	}
}

func (e *Extension) newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim <id>",
		Short: "Catalogue a similar index: same dimension, tags and prime level, new id",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runSim,
	}
}

func parseDim(s string) (int, error) {
	dim, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("dimension %q is not a number", s)
	}
	return dim, nil
}

// created writes the outcome of a create-style command.
func created(w io.Writer, verb string, en *service.Entry) error {
	if cmd.JSON() {
		return cmd.PrintJSON(en.ToJSON())
	}
	fmt.Fprintf(w, "%s %s\n", verb, en.Index)
	return nil
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	dim, err := parseDim(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	tags := ""
	if len(args) > 1 {
		tags = args[1]
	}

	en, err := e.svc.Create(c.Context(), dim, tags, cmd.Author())

	l := log.Event("index:new", "create").Author(cmd.Author()).Tags(tags).Detail("dim", dim)
	if en != nil {
		l.Resolved(en.Index.ID.String()).Result(en.Index.Tags.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index new: %w", err))
	}
	return created(cmd.Out(), "Created", en)
}

func (e *Extension) runLink(c *cobra.Command, args []string) error {
	dim, err := parseDim(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	en, err := e.svc.Link(c.Context(), dim, cmd.Author())

	l := log.Event("index:link", "create").Author(cmd.Author()).Detail("dim", dim)
	if en != nil {
		l.Resolved(en.Index.ID.String()).Result(en.Index.Tags.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index link: %w", err))
	}
	return created(cmd.Out(), "Created", en)
}

func (e *Extension) runSim(c *cobra.Command, args []string) error {
	id := args[0]

	en, err := e.svc.Sim(c.Context(), id, cmd.Author())

	l := log.Event("index:sim", "create").Author(cmd.Author()).Index(id)
	if en != nil {
		l.Resolved(en.Index.ID.String()).Result(en.Index.Tags.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index sim %q: %w", id, err))
	}
	return created(cmd.Out(), "Created", en)
}
