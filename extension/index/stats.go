// stats.go implements "tagidx index common" and "tagidx index stats", the
// read-only commands that summarise rather than list.

package index

import (
	"fmt"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/internal/format"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newCommonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "common <a> <b>",
		Short: "Show the tags two indices share",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runCommon,
	}
}

func (e *Extension) runCommon(c *cobra.Command, args []string) error {
	a, b := args[0], args[1]

	common, err := e.svc.Common(c.Context(), a, b)

	log.Event("index:common", "read").Author(cmd.Author()).Index(a).Detail("other", b).Result(common.String()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index common: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(common.Tags())
	}
	return format.Set(cmd.Out(), common)
}

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalogue statistics",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

type statsJSON struct {
	*store.Stats
	MaxTags   int `json:"max_tags"`
	MaxTagLen int `json:"max_tag_len"`
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("index:stats", "read").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index stats: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(statsJSON{Stats: st, MaxTags: e.limits.MaxTags, MaxTagLen: e.limits.MaxTagLen})
	}
	return format.Stats(cmd.Out(), st, e.limits)
}
