// parse.go implements "tagidx set parse", "set has" and "set subset".

package set

import (
	"fmt"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/internal/format"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <tags>",
		Short: "Print the canonical form of a tag set",
		Long: `Parse comma-separated tags and print the canonical form on one line.
An empty set prints "(empty)".

  tagidx set parse "n=1, Site,Site"    # Site,n=1
  tagidx set parse " , "               # (empty)
  tagidx set parse "a,b" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseArgs(c, args)

			entry := log.Event("set:parse", "parse").Author(cmd.Author()).Tags(args[0])
			if err == nil {
				entry.Result(sets[0].String())
			}
			entry.Write(err)

			if err != nil {
				return cmd.PrintJSONError(err)
			}
			if cmd.JSON() {
				return cmd.PrintJSON(toJSON(sets[0]))
			}
			if sets[0].IsEmpty() {
				fmt.Fprintln(cmd.Out(), format.Empty)
				return nil
			}
			fmt.Fprintln(cmd.Out(), sets[0])
			return nil
		},
	}
}

func newHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has <tags> <tag>",
		Short: "Report whether a set contains a tag",
		Long: `Print true if the set contains the tag, false otherwise.

The tag is compared after trimming whitespace. A tag longer than the
length limit is never contained.

  tagidx set has "Site,n=1" Site    # true`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseArgs(c, args[:1])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return printBool("has", sets[0].Has(args[1]))
		},
	}
}

func newSubsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subset <tags> <other>",
		Short: "Report whether a set contains every tag of another",
		Long: `Print true if every tag of <other> is in <tags>.

  tagidx set subset "Link,Site,n=1" "Site,Link"    # true
  tagidx set subset "Site" ""                      # true (empty set)`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseArgs(c, args)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return printBool("subset", sets[0].HasAll(sets[1]))
		},
	}
}

func printBool(key string, v bool) error {
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]bool{key: v})
	}
	fmt.Fprintln(cmd.Out(), v)
	return nil
}

func printSet(s tagset.Set) error {
	if cmd.JSON() {
		return cmd.PrintJSON(toJSON(s))
	}
	return format.Set(cmd.Out(), s)
}
