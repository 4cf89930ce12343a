// db.go implements the "tagidx db" command for catalogue management.
//
// Separated from extension.go to isolate multi-catalogue management: listing
// the catalogues in a .tagidx directory and toggling their local/shared
// status through gitignore entries.
//
// Design: db is a NoStoreCommand. Status changes never open a database, so a
// locked catalogue can still be marked local or shared. Listing opens each
// catalogue briefly to report the tag limits it enforces.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/spf13/cobra"
)

// dbJSON describes one catalogue in "tagidx db -o json".
type dbJSON struct {
	File      string `json:"file"`
	Status    string `json:"status"`
	MaxTags   int    `json:"max_tags,omitempty"`
	MaxTagLen int    `json:"max_tag_len,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage catalogues",
		Long: `List catalogues or change their local/shared status.

  tagidx db                    # list all catalogues with their limits
  tagidx db --local            # mark default catalogue as local
  tagidx db mps --local        # mark the mps catalogue as local
  tagidx db mps --share        # mark as shared
  tagidx db --dir /path        # list catalogues in another directory

Local catalogues are gitignored. Shared catalogues are committed.
If no name is given with --local or --share, the default catalogue is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalogue as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark catalogue as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .tagidx directory itself, empty for discovery.
	dir := cmd.Dir()
	idxDir := ""
	if dir != "" {
		idxDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(idxDir)
		log.Event("core:db", "list").Author(cmd.Author()).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case local:
		err := repo.IgnoreDB(name, idxDir)
		log.Event("core:db", "ignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		return printStatus(name, "local")
	case share:
		err := repo.UnignoreDB(name, idxDir)
		log.Event("core:db", "unignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		return printStatus(name, "shared")
	}

	ignored, err := repo.IsIgnored(name, idxDir)
	log.Event("core:db", "status").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	return printStatus(name, statusOf(ignored))
}

func statusOf(local bool) string {
	if local {
		return "local"
	}
	return "shared"
}

func printStatus(name, status string) error {
	if cmd.JSON() {
		return cmd.PrintJSON(dbJSON{File: repo.DBFileName(name), Status: status})
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

// listDBs prints every catalogue in dir with its status and tag limits. A
// catalogue that cannot be opened is still listed, with the reason.
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}

	out := make([]dbJSON, 0, len(dbs))
	for _, db := range dbs {
		j := dbJSON{File: db.File, Status: statusOf(db.Local)}
		svc, err := catalog.Open(db.Path)
		if err != nil {
			j.Error = err.Error()
		} else {
			l := svc.Limits()
			j.MaxTags, j.MaxTagLen = l.MaxTags, l.MaxTagLen
			svc.Close()
		}
		out = append(out, j)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(cmd.Out(), "No catalogues found")
		return nil
	}
	for _, j := range out {
		if j.Error != "" {
			fmt.Fprintf(cmd.Out(), "%s  %s  (%s)\n", j.File, j.Status, j.Error)
			continue
		}
		fmt.Fprintf(cmd.Out(), "%s  %s  max %d tags of %d characters\n", j.File, j.Status, j.MaxTags, j.MaxTagLen)
	}
	return nil
}
