package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jpl-au/tagidx/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

// newHandlers returns handlers rooted in a fresh working directory with no
// catalogue yet.
func newHandlers(t *testing.T) *handlers {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	h := &handlers{}
	t.Cleanup(func() {
		if h.svc != nil {
			h.svc.Close()
		}
	})
	return h
}

func initHandlers(t *testing.T, args map[string]any) *handlers {
	t.Helper()
	h := newHandlers(t)
	res, err := h.initCatalogue(context.Background(), call("tagidx_init", args))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	require.NotNil(t, h.svc)
	return h
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, newServer(&handlers{}))
}

func TestRequireInit(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.getIndex(ctx, call("tagidx_get", map[string]any{"id": "abcd"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, ErrNotInitialised, text(t, res))

	_, err = h.readIndexResource(ctx, "tagidx://indices/abcd")
	assert.EqualError(t, err, ErrNotInitialised)
}

func TestInitCatalogue(t *testing.T) {
	h := initHandlers(t, map[string]any{"max_tags": float64(2), "max_tag_len": float64(8)})
	assert.Equal(t, 2, h.svc.Limits().MaxTags)
	assert.Equal(t, 8, h.svc.Limits().MaxTagLen)

	res, err := h.initCatalogue(context.Background(), call("tagidx_init", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestInitCatalogue_InvalidLimits(t *testing.T) {
	h := newHandlers(t)
	res, err := h.initCatalogue(context.Background(), call("tagidx_init", map[string]any{"max_tags": float64(99)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "invalid limits")
	assert.Nil(t, h.svc)
}

func TestParseTags(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.parseTags(ctx, call("tagidx_parse", map[string]any{"tags": " n=1 , Site,Site "}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got setJSON
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, setJSON{Tags: []string{"Site", "n=1"}, Text: "Site,n=1", Len: 2, Cap: 4}, got)

	res, err = h.parseTags(ctx, call("tagidx_parse", map[string]any{"tags": "a,b,c", "max_tags": float64(2)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "too many tags: 3 tags (max 2)", text(t, res))
}

func TestCompareTags(t *testing.T) {
	h := newHandlers(t)

	compare := func(a, b string) compareJSON {
		t.Helper()
		res, err := h.compareTags(context.Background(), call("tagidx_compare", map[string]any{"a": a, "b": b}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		var got compareJSON
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
		return got
	}

	t.Run("union at capacity", func(t *testing.T) {
		got := compare("t1,t2,t3", "t4,t3,t2")
		assert.Equal(t, []string{"t2", "t3"}, got.Common)
		assert.Equal(t, []string{"t1"}, got.OnlyA)
		assert.Equal(t, []string{"t4"}, got.OnlyB)
		assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, got.Union)
		assert.Empty(t, got.UnionError)
		assert.False(t, got.AHasAllB)
	})

	t.Run("union overflow", func(t *testing.T) {
		got := compare("t1,t2,t3", "t4,t3,t2,t5")
		assert.Equal(t, []string{"t2", "t3"}, got.Common)
		assert.Equal(t, []string{"t1"}, got.OnlyA)
		assert.Equal(t, []string{"t4", "t5"}, got.OnlyB)
		assert.Empty(t, got.Union)
		assert.Equal(t, "too many tags: 5 tags (max 4)", got.UnionError)
		assert.False(t, got.AHasAllB)
	})
}

func TestIndexTools(t *testing.T) {
	h := initHandlers(t, nil)
	ctx := context.Background()

	res, err := h.createIndex(ctx, call("tagidx_create", map[string]any{"dim": float64(3), "tags": "Site,n=1", "author": "llm"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var created service.EntryJSON
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &created))
	assert.Equal(t, 3, created.Dim)
	assert.Equal(t, []string{"Site", "n=1"}, created.Tags)
	assert.Equal(t, "llm", created.Author)

	prefix := created.ID[:8]

	t.Run("get by prefix", func(t *testing.T) {
		res, err := h.getIndex(ctx, call("tagidx_get", map[string]any{"id": prefix}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		var got service.EntryJSON
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("resource", func(t *testing.T) {
		contents, err := h.readIndexResource(ctx, "tagidx://indices/"+prefix)
		require.NoError(t, err)
		require.Len(t, contents, 1)
		assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, created.ID)
	})

	t.Run("tag add and remove", func(t *testing.T) {
		res, err := h.tagAdd(ctx, call("tagidx_tag_add", map[string]any{"id": prefix, "tags": "Link"}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		assert.Contains(t, text(t, res), `"Link"`)

		res, err = h.tagAdd(ctx, call("tagidx_tag_add", map[string]any{"id": prefix, "tags": "x,y"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)

		res, err = h.tagRemove(ctx, call("tagidx_tag_remove", map[string]any{"id": prefix, "tags": "Link,absent"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)

		res, err = h.tagRemove(ctx, call("tagidx_tag_remove", map[string]any{"id": prefix, "tags": "Link"}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		assert.NotContains(t, text(t, res), `"Link"`)
	})

	t.Run("list with filter", func(t *testing.T) {
		_, err := h.linkIndex(ctx, call("tagidx_link", map[string]any{"dim": float64(2), "author": "llm"}))
		require.NoError(t, err)

		res, err := h.listIndices(ctx, call("tagidx_list", map[string]any{"tags": "Link"}))
		require.NoError(t, err)
		var got []service.EntryJSON
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
		require.Len(t, got, 1)
		assert.Equal(t, []string{"Link"}, got[0].Tags)
	})

	t.Run("prime", func(t *testing.T) {
		res, err := h.primeIndex(ctx, call("tagidx_prime", map[string]any{"id": prefix, "n": float64(2)}))
		require.NoError(t, err)
		var got service.EntryJSON
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
		assert.Equal(t, 2, got.Plev)
	})

	t.Run("delete and restore", func(t *testing.T) {
		res, err := h.deleteIndex(ctx, call("tagidx_delete", map[string]any{"id": prefix}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))

		res, err = h.getIndex(ctx, call("tagidx_get", map[string]any{"id": prefix}))
		require.NoError(t, err)
		assert.True(t, res.IsError)

		res, err = h.restoreIndex(ctx, call("tagidx_restore", map[string]any{"id": prefix}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
	})

	t.Run("stats", func(t *testing.T) {
		res, err := h.stats(ctx, call("tagidx_stats", nil))
		require.NoError(t, err)
		assert.Contains(t, text(t, res), `"indices": 2`)
	})
}

func TestCommonAndDiff(t *testing.T) {
	h := initHandlers(t, nil)
	ctx := context.Background()

	a, err := h.svc.Create(ctx, 2, "Site,n=1", "llm")
	require.NoError(t, err)
	b, err := h.svc.Create(ctx, 2, "Site,n=2", "llm")
	require.NoError(t, err)
	ida, idb := a.Index.ID.String(), b.Index.ID.String()

	res, err := h.commonTags(ctx, call("tagidx_common", map[string]any{"a": ida, "b": idb}))
	require.NoError(t, err)
	var common []string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &common))
	assert.Equal(t, []string{"Site"}, common)

	res, err = h.diffIndices(ctx, call("tagidx_diff", map[string]any{"a": ida, "b": idb}))
	require.NoError(t, err)
	var d struct {
		Removed []string `json:"removed"`
		Added   []string `json:"added"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &d))
	assert.Equal(t, []string{"n=1"}, d.Removed)
	assert.Equal(t, []string{"n=2"}, d.Added)
}

func TestConfigTools(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.configSet(ctx, call("tagidx_config_set", map[string]any{"key": "author.name", "value": "Ada"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	res, err = h.configGet(ctx, call("tagidx_config_get", map[string]any{"key": "author.name"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "Ada")

	res, err = h.configSet(ctx, call("tagidx_config_set", map[string]any{"key": "limits.max_tags", "value": "99"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestParseIndexURI(t *testing.T) {
	id, err := parseIndexURI("tagidx://indices/abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", id)

	_, err = parseIndexURI("tagidx://indices/")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = parseIndexURI("file:///tmp/x")
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = parseIndexURI("tagidx://indices/a/b")
	assert.ErrorIs(t, err, ErrInvalidURI)
}
