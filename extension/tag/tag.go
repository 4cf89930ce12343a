// Package tag provides the tag extension for tagidx.
// It registers commands: tag (with subcommands add, rm, ls, diff, log).
//
// Besides the commands, the extension keeps a tag history in a table of its
// own: every index creation and every tag change is recorded from the
// catalogue's events, and "tagidx tag log" replays them.
package tag

import (
	"context"
	"embed"
	"time"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/spf13/cobra"
)

//go:embed sql/*.sql
var schemas embed.FS

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
	_ extension.Vacuumable    = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service and creates the history table.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return store.ExecEmbedded(ctx.DB(), schemas, "sql")
}

// Commands returns the tag command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
	}
}

// MCPTools returns tagidx_tag_log. Tag changes themselves are core tools
// in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{logTool()}
}

// HandleEvent records index creations and tag changes in the history.
// Deletes, restores and prime changes leave the tags alone and are not
// recorded.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	var c change
	switch ev := evt.(type) {
	case extension.IndexCreateEvent:
		c = change{IndexID: ev.ID, Action: actionCreate, Result: ev.Tags, Author: ev.Author}
	case extension.TagEvent:
		c = change{IndexID: ev.ID, Action: actionRemove, Tags: joinTags(ev.Tags), Result: ev.Result, Author: ev.Author}
		if ev.Added {
			c.Action = actionAdd
		}
	default:
		return nil
	}
	c.CreatedAt = time.Now().Unix()

	err := record(context.Background(), ctx.DB(), c)
	log.Event("tag:history", "record").
		Author(c.Author).
		Index(c.IndexID).
		Tags(c.Tags).
		Result(c.Result).
		Detail("action", c.Action).
		Write(err)
	return err
}

// Vacuum removes the history of indices that no longer exist. The core
// vacuum runs first, so olderThan has already been applied to the indices
// themselves.
func (e *Extension) Vacuum(ctx extension.Context, _ *time.Duration) (int64, error) {
	if err := store.ExecEmbedded(ctx.DB(), schemas, "sql"); err != nil {
		return 0, err
	}
	return purge(context.Background(), ctx.DB())
}
