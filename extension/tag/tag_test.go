package tag

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup opens a catalogue with this extension initialised and listening.
func setup(t *testing.T) (*catalog.Service, *Extension, extension.Context) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, repo.Init(context.Background(), repo.InitOptions{Dir: dir, Limits: tagset.DefaultLimits}))
	svc, err := catalog.Open(filepath.Join(dir, repo.Dir, repo.DBFile))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	extCtx := extension.NewContext(svc, svc.DB(), &config.Config{})
	svc.SetExtensionContext(extCtx)

	e, ok := extension.Get("tag").(*Extension)
	require.True(t, ok, "tag extension registers itself")
	require.NoError(t, e.Init(extCtx))
	return svc, e, extCtx
}

func TestHistory(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site", "alice")
	require.NoError(t, err)
	id := e.Index.ID.String()

	_, err = svc.Tag(ctx, id, "n=1,Link,Site", "bob")
	require.NoError(t, err)
	_, err = svc.Tag(ctx, id, "Site,Link", "bob")
	require.NoError(t, err, "re-adding present tags is accepted")
	_, err = svc.Untag(ctx, id, "Link", "carol")
	require.NoError(t, err)
	_, err = svc.Tag(ctx, id, "a,b,c", "bob")
	require.Error(t, err, "overflow is not recorded")

	changes, err := history(ctx, svc.DB(), id)
	require.NoError(t, err)
	require.Len(t, changes, 3, "an add that changes nothing is not recorded")

	assert.Equal(t, actionCreate, changes[0].Action)
	assert.Equal(t, "Site", changes[0].Result)
	assert.Equal(t, "alice", changes[0].Author)

	assert.Equal(t, actionAdd, changes[1].Action)
	assert.Equal(t, "Link,n=1", changes[1].Tags, "only tags the index lacked")
	assert.Equal(t, "Link,Site,n=1", changes[1].Result)
	assert.Equal(t, "bob", changes[1].Author)
	assert.Contains(t, changes[1].line(), "+Link,n=1")
	assert.Contains(t, changes[1].line(), "by bob")

	assert.Equal(t, actionRemove, changes[2].Action)
	assert.Equal(t, "Link", changes[2].Tags)
	assert.Equal(t, "Site,n=1", changes[2].Result)
	assert.Equal(t, "carol", changes[2].Author)
	assert.Contains(t, changes[2].line(), `-Link`)
	assert.Contains(t, changes[2].line(), "by carol")
}

func TestVacuum(t *testing.T) {
	svc, e, extCtx := setup(t)
	ctx := context.Background()

	keep, err := svc.Create(ctx, 2, "Site", "alice")
	require.NoError(t, err)
	gone, err := svc.Create(ctx, 2, "Link", "alice")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, gone.Index.ID.String())
	require.NoError(t, err)

	n, err := e.Vacuum(extCtx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "soft-deleted indices keep their history")

	_, err = svc.Vacuum(ctx, nil)
	require.NoError(t, err)
	n, err = e.Vacuum(extCtx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	changes, err := history(ctx, svc.DB(), keep.Index.ID.String())
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestHandleLog(t *testing.T) {
	svc, _, extCtx := setup(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site", "alice")
	require.NoError(t, err)

	var req mcp.CallToolRequest
	req.Params.Name = "tagidx_tag_log"
	req.Params.Arguments = map[string]any{"id": e.Index.ShortID()}

	res, err := handleLog(ctx, extCtx, req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []change
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &got))
	require.Len(t, got, 1)
	assert.Equal(t, e.Index.ID.String(), got[0].IndexID)

	req.Params.Arguments = map[string]any{}
	res, err = handleLog(ctx, extCtx, req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCPTools(t *testing.T) {
	tools := (&Extension{}).MCPTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "tagidx_tag_log", tools[0].Tool.Name)
}
