package tag_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/internal/tag"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a catalogue in a temp dir, closed when the test ends.
func setupService(t *testing.T) service.Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, repo.Init(context.Background(), repo.InitOptions{Dir: dir, Limits: tagset.DefaultLimits}), "init catalogue")
	svc, err := catalog.Open(filepath.Join(dir, repo.Dir, repo.DBFile))
	require.NoError(t, err, "open catalogue")
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAdd_ResolvesPrefix(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.Add(ctx, &buf, svc, e.Index.ShortID(), "n=1, Link", "tester")
	require.NoError(t, err)

	assert.Equal(t, e.Index.ID.String(), result.ID, "result carries the full id, not the prefix")
	assert.Equal(t, []string{"Link", "Site", "n=1"}, result.Tags)
	assert.Equal(t, "add", result.Action)
	assert.Contains(t, buf.String(), `"Link,Site,n=1"`)
}

func TestAdd_OverflowLeavesIndexUnchanged(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "a,b,c", "tester")
	require.NoError(t, err)

	_, err = tag.Add(ctx, &bytes.Buffer{}, svc, e.Index.ShortID(), "d,e", "tester")
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)

	got, err := svc.Get(ctx, e.Index.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", got.Index.Tags.String())
}

func TestRemove(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Link,Site", "tester")
	require.NoError(t, err)

	_, err = tag.Remove(ctx, &bytes.Buffer{}, svc, e.Index.ShortID(), "Link,absent", "tester")
	assert.ErrorIs(t, err, service.ErrTagNotFound)

	result, err := tag.Remove(ctx, &bytes.Buffer{}, svc, e.Index.ShortID(), "Link", "tester")
	require.NoError(t, err)
	assert.Equal(t, []string{"Site"}, result.Tags)
	assert.Equal(t, "remove", result.Action)
}

func TestList_Index(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site,n=1", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.List(ctx, &buf, svc, e.Index.ShortID())
	require.NoError(t, err)
	assert.Equal(t, e.Index.ID.String(), result.ID)
	assert.Equal(t, "Site\nn=1\n", buf.String())
}

func TestList_All(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, tags := range []string{"Site,n=1", "Site,n=2"} {
		_, err := svc.Create(ctx, 2, tags, "tester")
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	result, err := tag.List(ctx, &buf, svc, "")
	require.NoError(t, err)
	assert.Equal(t, "", result.ID)
	assert.Equal(t, []string{"Site", "n=1", "n=2"}, result.Tags)
	assert.Equal(t, []store.TagCount{{Tag: "Site", Count: 2}, {Tag: "n=1", Count: 1}, {Tag: "n=2", Count: 1}}, result.Counts)
	assert.Contains(t, buf.String(), "Site  2\n")
}

func TestDiff(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, 2, "Site,n=1", "tester")
	require.NoError(t, err)
	b, err := svc.Create(ctx, 2, "Site,n=2", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := tag.Diff(ctx, &buf, svc, a.Index.ShortID(), b.Index.ShortID(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"n=1"}, r.Removed)
	assert.Equal(t, []string{"n=2"}, r.Added)
	assert.Equal(t, []string{"Site"}, r.Kept)
	assert.Contains(t, buf.String(), "- n=1\n")
	assert.Contains(t, buf.String(), "+ n=2\n")
}
