// init.go implements the "tagidx init" command for catalogue initialisation.
//
// Separated from extension.go because init runs before a catalogue exists
// and creates the initial database.
//
// Design: The tag limits a catalogue enforces are fixed at init. They come
// from --max-tags and --max-tag-len, falling back to the limits.* config
// keys, and are recorded in the database so later config changes cannot
// reinterpret stored tags.

package core

import (
	"fmt"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new tagidx catalogue",
		Long: `Creates a .tagidx/tagidx.db catalogue in the current directory.

Use --db to create additional catalogues:
  tagidx init --db mps    # creates .tagidx/tagidx-mps.db

Use --dir to create in a different directory:
  tagidx init --dir /path/to/project

Use --local to exclude from git:
  tagidx init --db scratch --local

Tag limits are fixed when the catalogue is created:
  tagidx init --max-tags 6 --max-tag-len 24

Without flags the limits.max_tags and limits.max_tag_len config keys apply,
and without those the defaults (4 tags of up to 16 characters).`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalogue as local (gitignored)")
	c.Flags().Int(extension.FlagMaxTags, 0, fmt.Sprintf("Maximum tags per index (1-%d)", tagset.MaxTags))
	c.Flags().Int(extension.FlagMaxTagLen, 0, fmt.Sprintf("Maximum characters per tag (1-%d)", tagset.MaxTextLen))
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the catalogue elsewhere"))
	}

	limits, err := cmd.TagLimits(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	err = repo.Init(c.Context(), repo.InitOptions{
		Force:  cmd.Force(),
		DB:     db,
		Local:  local,
		Dir:    dir,
		Limits: limits,
	})

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Detail("max_tags", limits.MaxTags).
		Detail("max_tag_len", limits.MaxTagLen).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"path":        loc,
			"max_tags":    limits.MaxTags,
			"max_tag_len": limits.MaxTagLen,
		})
	}
	fmt.Fprintf(cmd.Out(), "Initialised tagidx catalogue in %s (max %d tags of %d characters)\n", loc, limits.MaxTags, limits.MaxTagLen)
	return nil
}
