// ops.go implements "tagidx set common", "set union" and "set diff".

package set

import (
	"fmt"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/diff"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/spf13/cobra"
)

func newCommonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "common <a> <b>",
		Short: "Print the tags two sets share",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseArgs(c, args)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return printSet(sets[0].Common(sets[1]))
		},
	}
}

func newUnionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "union <a> <b>",
		Short: "Print the tags of either set",
		Long: `Print the union of two sets.

Fails if the union holds more tags than the limit allows.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseArgs(c, args)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			u, err := sets[0].Union(sets[1])
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("union: %w", err))
			}
			return printSet(u)
		},
	}
}

func newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Show the tags removed and added between two sets",
		Long: `Show the difference between two sets as a unified diff, one tag per line.

  tagidx set diff "Site,n=1" "Site,n=2"`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			raw, _ := c.Flags().GetBool(extension.FlagRaw)

			sets, err := parseArgs(c, args)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			r := diff.Compute(sets[0], sets[1], args[0], args[1])

			log.Event("set:diff", "diff").
				Author(cmd.Author()).
				Tags(args[0]).
				Detail("other", args[1]).
				Detail("removed", len(r.Removed)).
				Detail("added", len(r.Added)).
				Write(nil)

			if cmd.JSON() {
				return cmd.PrintJSON(r)
			}
			return r.Write(cmd.Out(), diff.Colour(raw))
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}
