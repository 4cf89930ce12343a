// Package set provides the set extension for tagidx: commands that work on
// tag text alone, without a catalogue.
// It registers commands: set (with subcommands parse, has, subset, common,
// union, diff).
package set

import (
	"fmt"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the set extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "set".
func (e *Extension) Name() string { return "set" }

// Commands returns the set command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "set",
		Short: "Work with tag sets directly",
		Long: `Parse and compare comma-separated tag sets without a catalogue.

Tags are trimmed of whitespace, deduplicated and kept in sorted order.
Limits come from the limits.* config keys unless overridden:

  tagidx set parse " n=1, Site ,Site"      # Site,n=1
  tagidx set parse a,b,c,d,e --max-tags 8`,
	}
	c.PersistentFlags().Int(extension.FlagMaxTags, 0, fmt.Sprintf("Maximum tags per set (1-%d)", tagset.MaxTags))
	c.PersistentFlags().Int(extension.FlagMaxTagLen, 0, fmt.Sprintf("Maximum characters per tag (1-%d)", tagset.MaxTextLen))

	c.AddCommand(newParseCmd())
	c.AddCommand(newHasCmd())
	c.AddCommand(newSubsetCmd())
	c.AddCommand(newCommonCmd())
	c.AddCommand(newUnionCmd())
	c.AddCommand(newDiffCmd())
	return []*cobra.Command{c}
}

// MCPTools returns nil. tagidx_parse and tagidx_compare cover sets over MCP.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns "set": every subcommand works on its arguments.
func (e *Extension) NoStoreCommands() []string {
	return []string{"set"}
}

// setJSON is the JSON form of a parsed set.
type setJSON struct {
	Tags []string `json:"tags"`
	Text string   `json:"text"`
	Len  int      `json:"len"`
	Cap  int      `json:"cap"`
}

func toJSON(s tagset.Set) setJSON {
	return setJSON{Tags: s.Tags(), Text: s.String(), Len: s.Len(), Cap: s.Cap()}
}

// parseArgs parses every argument as a tag set under the command's limits.
func parseArgs(c *cobra.Command, args []string) ([]tagset.Set, error) {
	limits, err := cmd.TagLimits(c)
	if err != nil {
		return nil, err
	}
	sets := make([]tagset.Set, len(args))
	for i, a := range args {
		s, err := limits.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", a, err)
		}
		sets[i] = s
	}
	return sets, nil
}
