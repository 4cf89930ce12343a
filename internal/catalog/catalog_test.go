package catalog_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/index"
	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/internal/validate"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures events fired by the catalogue.
type recorder struct {
	mu     sync.Mutex
	events []extension.Event
}

func (r *recorder) Name() string { return "catalog-test-recorder" }
func (r *recorder) Commands() []*cobra.Command { return nil }
func (r *recorder) MCPTools() []extension.MCPTool { return nil }
func (r *recorder) HandleEvent(_ extension.Context, e extension.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) take() []extension.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

var events = &recorder{}

func init() {
	extension.Register(events)
}

func setup(t *testing.T, limits tagset.Limits) *catalog.Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, repo.Init(context.Background(), repo.InitOptions{Dir: dir, Limits: limits}))

	svc, err := catalog.Open(filepath.Join(dir, repo.Dir, repo.DBFile))
	require.NoError(t, err)
	svc.SetExtensionContext(extension.NewContext(svc, svc.DB(), &config.Config{}))
	t.Cleanup(func() { svc.Close() })
	events.take()
	return svc
}

func TestService_Limits(t *testing.T) {
	svc := setup(t, tagset.Limits{MaxTags: 2, MaxTagLen: 8})
	assert.Equal(t, tagset.Limits{MaxTags: 2, MaxTagLen: 8}, svc.Limits())

	e, err := svc.Create(context.Background(), 2, "a,b", "")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Index.Tags.Cap())
	assert.Equal(t, catalog.DefaultAuthor, e.Author)
}

func TestService_CreateGetResolve(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	e, err := svc.Create(ctx, 3, " Site , n=1 ", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Index.Dim)
	assert.Equal(t, "Site,n=1", e.Index.Tags.String())
	assert.Equal(t, "alice", e.Author)

	id := e.Index.ID.String()
	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Index.Same(e.Index))
	assert.True(t, got.Index.Tags == e.Index.Tags, "tags survive the store unchanged")

	got, err = svc.Resolve(ctx, id[:8], false)
	require.NoError(t, err)
	assert.Equal(t, id, got.Index.ID.String())

	_, err = svc.Resolve(ctx, "ab", false)
	assert.ErrorIs(t, err, validate.ErrInvalidID)

	evs := events.take()
	require.Len(t, evs, 1)
	assert.Equal(t, extension.IndexCreateEvent{ID: id, Dim: 3, Tags: "Site,n=1", Author: "alice"}, evs[0])
}

func TestService_CreateRejects(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, "a,b,c,d,e", "")
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)

	_, err = svc.Create(ctx, 2, "seventeen-chars-x", "")
	assert.ErrorIs(t, err, tagset.ErrInvalidTag)

	_, err = svc.Create(ctx, 0, "a", "")
	assert.ErrorIs(t, err, index.ErrInvalidDim)

	_, err = svc.Create(ctx, 2, "a\x00", "")
	assert.ErrorIs(t, err, validate.ErrInvalidTag)

	all, err := svc.List(ctx, service.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, events.take())
}

func TestService_Link(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	e, err := svc.Link(context.Background(), 4, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{index.LinkTag}, e.Index.Tags.Tags())
	assert.Equal(t, 4, e.Index.Dim)
}

func TestService_TagUntag(t *testing.T) {
	svc := setup(t, tagset.Limits{MaxTags: 3, MaxTagLen: 16})
	ctx := context.Background()

	e, err := svc.Create(ctx, 2, "Site", "")
	require.NoError(t, err)
	id := e.Index.ID.String()
	events.take()

	e, err = svc.Tag(ctx, id[:6], "n=1, Link, Site", "tester")
	require.NoError(t, err)
	assert.Equal(t, "Link,Site,n=1", e.Index.Tags.String())

	evs := events.take()
	require.Len(t, evs, 1)
	assert.Equal(t, extension.TagEvent{
		ID:     id,
		Tags:   []string{"Link", "n=1"},
		Result: "Link,Site,n=1",
		Author: "tester",
		Added:  true,
	}, evs[0], "the event carries only the tags that were new")

	t.Run("present tags fire nothing", func(t *testing.T) {
		e, err := svc.Tag(ctx, id, "Site,n=1", "tester")
		require.NoError(t, err)
		assert.Equal(t, "Link,Site,n=1", e.Index.Tags.String())
		assert.Empty(t, events.take())
	})

	t.Run("over capacity changes nothing", func(t *testing.T) {
		_, err := svc.Tag(ctx, id, "extra", "tester")
		assert.ErrorIs(t, err, tagset.ErrTooManyTags)
		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Link,Site,n=1", got.Index.Tags.String())
	})

	t.Run("empty tag list", func(t *testing.T) {
		_, err := svc.Tag(ctx, id, " , ", "tester")
		assert.ErrorIs(t, err, validate.ErrInvalidTag)
	})

	t.Run("untag missing changes nothing", func(t *testing.T) {
		_, err := svc.Untag(ctx, id, "Link,Missing", "tester")
		assert.ErrorIs(t, err, service.ErrTagNotFound)
		assert.ErrorContains(t, err, "Missing")
		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Index.Tags.Len())
	})

	events.take()
	e, err = svc.Untag(ctx, id, "Link,n=1", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Site", e.Index.Tags.String())

	evs = events.take()
	require.Len(t, evs, 1)
	assert.Equal(t, extension.TagEvent{ID: id, Tags: []string{"Link", "n=1"}, Result: "Site", Author: "bob"}, evs[0])

	found, err := svc.Find(ctx, "Link")
	require.NoError(t, err)
	assert.Empty(t, found, "tag rows follow untag")
}

func TestService_ListFind(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	a, err := svc.Create(ctx, 2, "Site,n=1", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, 2, "Site,n=2", "")
	require.NoError(t, err)
	_, err = svc.Link(ctx, 5, "")
	require.NoError(t, err)

	sites, err := svc.Find(ctx, "Site")
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.True(t, sites[0].Index.Same(a.Index))
	assert.True(t, sites[1].Index.Same(b.Index))

	one, err := svc.Find(ctx, "n=1,Site")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.True(t, one[0].Index.Same(a.Index))

	all, err := svc.List(ctx, service.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.Find(ctx, "a,b,c,d,e")
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)
}

func TestService_Common(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	a, err := svc.Create(ctx, 2, "t1,t2,t3", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, 2, "t4,t3,t2", "")
	require.NoError(t, err)

	c, err := svc.Common(ctx, a.Index.ID.String(), b.Index.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3"}, c.Tags())
}

func TestService_SimPrime(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	a, err := svc.Create(ctx, 7, "Site", "")
	require.NoError(t, err)
	id := a.Index.ID.String()

	s, err := svc.Sim(ctx, id, "carol")
	require.NoError(t, err)
	assert.False(t, s.Index.Same(a.Index))
	assert.Equal(t, 7, s.Index.Dim)
	assert.True(t, s.Index.Tags == a.Index.Tags)

	p, err := svc.Prime(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Index.Plev)

	p, err = svc.Prime(ctx, id, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Index.Plev)

	_, err = svc.Prime(ctx, id, -2)
	assert.ErrorIs(t, err, index.ErrInvalidPlev)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Index.Plev)
}

func TestService_DeleteRestoreVacuum(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	a, err := svc.Create(ctx, 2, "Site", "")
	require.NoError(t, err)
	id := a.Index.ID.String()

	d, err := svc.Delete(ctx, id[:8])
	require.NoError(t, err)
	assert.True(t, d.Deleted)

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	trash, err := svc.List(ctx, service.ListOptions{DeletedOnly: true})
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.True(t, trash[0].Deleted)
	assert.NotZero(t, trash[0].DeletedAt)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	r, err := svc.Restore(ctx, id[:8])
	require.NoError(t, err)
	assert.False(t, r.Deleted)
	assert.Zero(t, r.DeletedAt)

	_, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	n, err := svc.Vacuum(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Restore(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var types []extension.EventType
	for _, e := range events.take() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []extension.EventType{
		extension.EventIndexCreate, extension.EventIndexDelete,
		extension.EventIndexRestore, extension.EventIndexDelete,
	}, types)
}

func TestService_Stats(t *testing.T) {
	svc := setup(t, tagset.DefaultLimits)
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, "Site,n=1", "alice")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "", "bob")
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Indices)
	assert.Equal(t, int64(2), st.Tags)
	assert.Equal(t, int64(1), st.Untagged)
	assert.Equal(t, int64(2), st.Authors)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.TagCount{{Tag: "Site", Count: 1}, {Tag: "n=1", Count: 1}}, tags)
}

func TestService_Import(t *testing.T) {
	svc := setup(t, tagset.Limits{MaxTags: 2, MaxTagLen: 8})
	ctx := context.Background()

	i, err := index.Parse(3, "Site,n=1", tagset.DefaultLimits)
	require.NoError(t, err)
	i, err = i.Prime(2)
	require.NoError(t, err)

	e, err := svc.Import(ctx, i, "alice")
	require.NoError(t, err)
	assert.True(t, e.Index.Same(i), "id and prime level are kept")
	assert.Equal(t, 2, e.Index.Tags.Cap(), "tags adopt the catalogue limits")

	_, err = svc.Import(ctx, i, "alice")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	t.Run("tags beyond the catalogue limits", func(t *testing.T) {
		big, err := index.Parse(2, "a,b,c", tagset.DefaultLimits)
		require.NoError(t, err)
		_, err = svc.Import(ctx, big, "")
		assert.ErrorIs(t, err, tagset.ErrTooManyTags)
	})

	t.Run("invalid dim and plev", func(t *testing.T) {
		bad := i.Sim()
		bad.Dim = 0
		_, err := svc.Import(ctx, bad, "")
		assert.ErrorIs(t, err, index.ErrInvalidDim)

		bad = i.Sim()
		bad.Plev = -1
		_, err = svc.Import(ctx, bad, "")
		assert.ErrorIs(t, err, index.ErrInvalidPlev)
	})

	evs := events.take()
	require.Len(t, evs, 1)
	assert.Equal(t, extension.EventIndexCreate, evs[0].EventType())
}
