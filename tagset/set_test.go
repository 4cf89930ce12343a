package tagset_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tags returns the elements of s as strings via All.
func tags(s tagset.Set) []string {
	var out []string
	for t := range s.All() {
		out = append(out, t.String())
	}
	return out
}

// requireSorted fails unless s iterates strictly ascending.
func requireSorted(t *testing.T, s tagset.Set) {
	t.Helper()
	var prev tagset.Text
	i := 0
	for cur := range s.All() {
		if i > 0 {
			require.Negative(t, prev.Compare(cur), "tags not strictly ascending: %v", tags(s))
		}
		prev = cur
		i++
	}
	require.Equal(t, s.Len(), i)
}

func TestSet_New(t *testing.T) {
	s := tagset.New()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 4, s.Cap())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, tagset.DefaultLimits, s.Limits())
}

func TestSet_ZeroValue(t *testing.T) {
	var s tagset.Set
	assert.Equal(t, tagset.DefaultLimits, s.Limits())
	require.NoError(t, s.Add("Site"))
	assert.True(t, s.Has("Site"))
	assert.Equal(t, 4, s.Cap())

	assert.True(t, tagset.Set{} == tagset.New(), "zero value and New share one representation")
	assert.True(t, tagset.Set{} == tagset.DefaultLimits.New())
	assert.True(t, tagset.Limits{MaxTags: 4, MaxTagLen: 16}.New() == tagset.New())

	built := tagset.New()
	require.NoError(t, built.Add("Site"))
	assert.True(t, s == built, "equal limits and elements compare ==")

	wide := tagset.Limits{MaxTags: 8, MaxTagLen: 16}.New()
	require.NoError(t, wide.Add("Site"))
	assert.False(t, s == wide, "different limits differ under ==")
	assert.True(t, s.Equal(wide), "Equal ignores limits")
}

func TestSet_Add(t *testing.T) {
	s := tagset.New()
	require.NoError(t, s.Add("t2"))
	require.NoError(t, s.Add("t1"))
	require.NoError(t, s.Add("t3"))

	if diff := cmp.Diff([]string{"t1", "t2", "t3"}, s.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	first, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, "t1", first.String())
}

func TestSet_AddIdempotent(t *testing.T) {
	once := tagset.New()
	require.NoError(t, once.Add("x"))

	twice := tagset.New()
	require.NoError(t, twice.Add("x"))
	require.NoError(t, twice.Add("x"))

	assert.Equal(t, 1, twice.Len())
	assert.True(t, once == twice, "adding twice should equal adding once")
}

func TestSet_TooManyTags(t *testing.T) {
	s := tagset.Limits{MaxTags: 2, MaxTagLen: 16}.New()
	require.NoError(t, s.Add("t1"))
	require.NoError(t, s.Add("t2"))
	before := s

	err := s.Add("t3")
	require.Error(t, err)
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)
	assert.NotErrorIs(t, err, tagset.ErrInvalidTag)

	var tm *tagset.TooManyTagsError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, 3, tm.Actual)
	assert.Equal(t, 2, tm.Max)

	assert.True(t, before == s, "failed add must leave the set unchanged")
	assert.Equal(t, []string{"t1", "t2"}, s.Tags())

	t.Run("duplicate on full set is a no-op", func(t *testing.T) {
		require.NoError(t, s.Add("t1"))
		assert.Equal(t, 2, s.Len())
	})
}

func TestSet_AddTooLong(t *testing.T) {
	s := tagset.MustParse("a")
	before := s

	err := s.Add("seventeen-chars-x")
	require.Error(t, err)
	assert.ErrorIs(t, err, tagset.ErrInvalidTag)
	assert.ErrorIs(t, err, tagset.ErrTooLong)
	assert.NotErrorIs(t, err, tagset.ErrTooManyTags)

	var it *tagset.InvalidTagError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, "seventeen-chars-x", it.Tag)

	var tl *tagset.TooLongError
	require.ErrorAs(t, err, &tl)
	assert.Equal(t, &tagset.TooLongError{Actual: 17, Max: 16}, tl)

	assert.True(t, before == s)
}

func TestSet_AddInvalidUTF8(t *testing.T) {
	s := tagset.New()
	err := s.Add("\xc3")
	assert.ErrorIs(t, err, tagset.ErrInvalidTag)
	assert.ErrorIs(t, err, tagset.ErrInvalidUTF8)
	assert.Equal(t, 0, s.Len())
}

func TestSet_Remove(t *testing.T) {
	s := tagset.MustParse("t1,t2,t3")
	require.Equal(t, 3, s.Len())

	assert.True(t, s.Remove("t2"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has("t2"))
	assert.True(t, s.Has("t1"))
	assert.True(t, s.Has("t3"))
	requireSorted(t, s)

	t.Run("absent", func(t *testing.T) {
		before := s
		assert.False(t, s.Remove("t9"))
		assert.True(t, before == s)
	})

	t.Run("too long", func(t *testing.T) {
		before := s
		assert.False(t, s.Remove("a-tag-that-is-far-too-long"))
		assert.True(t, before == s)
	})

	t.Run("remove then re-add matches fresh parse", func(t *testing.T) {
		require.NoError(t, s.Add("t2"))
		assert.True(t, s == tagset.MustParse("t3,t2,t1"))
	})

	t.Run("last element", func(t *testing.T) {
		one := tagset.MustParse("only")
		assert.True(t, one.Remove("only"))
		assert.True(t, one.IsEmpty())
		assert.True(t, one == tagset.New())
	})
}

func TestSet_Has(t *testing.T) {
	s := tagset.MustParse("t1,t2,t3")
	assert.True(t, s.Has("t1"))
	assert.True(t, s.Has("t2"))
	assert.True(t, s.Has("t3"))
	assert.False(t, s.Has("t4"))
	assert.False(t, s.Has(""))
	assert.False(t, s.Has("T1"), "comparison is case-sensitive")
	assert.False(t, s.Has("this-tag-exceeds-sixteen"))
	assert.False(t, s.Has("\xff"))
}

func TestSet_HasAll(t *testing.T) {
	s := tagset.MustParse("a,b,c")

	assert.True(t, s.HasAll(tagset.New()), "empty set is a subset")
	assert.True(t, s.HasAll(tagset.MustParse("a,c")))
	assert.True(t, s.HasAll(s))
	assert.False(t, s.HasAll(tagset.MustParse("a,d")))

	// Flip each required element in turn.
	for _, missing := range []string{"a", "b", "c"} {
		reduced := s
		require.True(t, reduced.Remove(missing))
		assert.False(t, reduced.HasAll(s), "HasAll without %q", missing)
	}
}

func TestSet_Common(t *testing.T) {
	a := tagset.MustParse("t1,t2,t3")
	b := tagset.MustParse("t2,t3,t4")

	common := a.Common(b)
	assert.Equal(t, 2, common.Len())
	assert.True(t, common.Has("t2"))
	assert.True(t, common.Has("t3"))
	assert.False(t, common.Has("t1"))
	assert.False(t, common.Has("t4"))

	// Insertion order of either input does not matter.
	assert.True(t, tagset.MustParse("t3,t1,t2").Common(tagset.MustParse("t4,t3,t2")) == common)
	assert.True(t, b.Common(a).Equal(common))

	t.Run("disjoint", func(t *testing.T) {
		assert.True(t, a.Common(tagset.MustParse("x,y")).IsEmpty())
	})

	t.Run("keeps receiver limits", func(t *testing.T) {
		l := tagset.Limits{MaxTags: 3, MaxTagLen: 8}
		small, err := l.Parse("t1,t2")
		require.NoError(t, err)
		assert.Equal(t, l, small.Common(a).Limits())
	})
}

func TestSet_Difference(t *testing.T) {
	a := tagset.MustParse("Link,Site,n=1")
	b := tagset.MustParse("Site")
	assert.Equal(t, []string{"Link", "n=1"}, a.Difference(b).Tags())
	assert.True(t, b.Difference(a).IsEmpty())
}

func TestSet_Union(t *testing.T) {
	a := tagset.MustParse("a,c")
	b := tagset.MustParse("b,c")

	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, u.Tags())
	assert.Equal(t, []string{"a", "c"}, a.Tags(), "receiver must not change")

	t.Run("overflow", func(t *testing.T) {
		_, err := a.Union(tagset.MustParse("x,y,z"))
		assert.ErrorIs(t, err, tagset.ErrTooManyTags)
	})

	t.Run("element too long for receiver", func(t *testing.T) {
		short, err := tagset.Limits{MaxTags: 4, MaxTagLen: 2}.Parse("ab")
		require.NoError(t, err)
		_, err = short.Union(tagset.MustParse("abc"))
		assert.ErrorIs(t, err, tagset.ErrInvalidTag)
		assert.ErrorIs(t, err, tagset.ErrTooLong)
	})
}

func TestSet_At(t *testing.T) {
	s := tagset.MustParse("b,a")
	for i, want := range []string{"a", "b"} {
		got, ok := s.At(i)
		require.True(t, ok)
		assert.Equal(t, want, got.String())
	}
	_, ok := s.At(2)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
}

func TestSet_AllRestartable(t *testing.T) {
	s := tagset.MustParse("c,a,b")
	first := tags(s)
	second := tags(s)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c"}, first)

	// Stopping early is allowed.
	n := 0
	for range s.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSet_Unicode(t *testing.T) {
	l := tagset.Limits{MaxTags: 2, MaxTagLen: 3}
	s, err := l.Parse("αβγ, abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "αβγ"}, s.Tags())
	assert.True(t, s.Has("αβγ"))

	err = s.Add("δεζ")
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)

	s2 := l.New()
	err = s2.Add("αβγδ")
	var tl *tagset.TooLongError
	require.ErrorAs(t, err, &tl)
	assert.Equal(t, 4, tl.Actual)
}

func TestSet_Equal(t *testing.T) {
	a := tagset.MustParse("x,y")
	b, err := tagset.Limits{MaxTags: 8, MaxTagLen: 32}.Parse("y,x")
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "Equal ignores limits")
	assert.False(t, a == b, "== includes limits")
	assert.False(t, a.Equal(tagset.MustParse("x")))
	assert.False(t, a.Equal(tagset.MustParse("x,z")))
}

func TestSet_TextRoundTrip(t *testing.T) {
	for _, in := range []string{"", "Link", "t3,t2,t1", "Site, n=12 ,Link", "αβγ,abc"} {
		s := tagset.MustParse(in)
		b, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, s.String(), string(b))

		back, err := tagset.Parse(string(b))
		require.NoError(t, err)
		assert.True(t, back == s, "round trip of %q", in)
	}
}

func TestSet_UnmarshalText(t *testing.T) {
	s := tagset.Limits{MaxTags: 2, MaxTagLen: 16}.New()
	require.NoError(t, s.UnmarshalText([]byte("b,a")))
	assert.Equal(t, "a,b", s.String())

	before := s
	err := s.UnmarshalText([]byte("x,y,z"))
	assert.ErrorIs(t, err, tagset.ErrTooManyTags)
	assert.True(t, before == s, "failed unmarshal must leave the set unchanged")
}

func TestSet_JSON(t *testing.T) {
	type labelled struct {
		Tags tagset.Set `json:"tags"`
	}
	in := labelled{Tags: tagset.MustParse("Site,Link")}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":"Link,Site"}`, string(b))

	var out labelled
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, out.Tags == in.Tags)
}

// TestSet_SortInvariant applies random adds and removes and checks the set
// against a sorted slice model after every step.
func TestSet_SortInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pool := []string{"a", "b", "c", "d", "e", "f", "Link", "Site", "n=1", "αβ", "zz", "too-long-for-this-set"}
	l := tagset.Limits{MaxTags: 5, MaxTagLen: 8}

	s := l.New()
	var model []string
	for step := range 2000 {
		tag := pool[rng.IntN(len(pool))]
		if rng.IntN(3) == 0 {
			got := s.Remove(tag)
			i, found := slices.BinarySearch(model, tag)
			if found {
				model = slices.Delete(model, i, i+1)
			}
			require.Equal(t, found, got, "step %d: Remove(%q)", step, tag)
		} else {
			before := s
			err := s.Add(tag)
			i, found := slices.BinarySearch(model, tag)
			switch {
			case len([]rune(tag)) > l.MaxTagLen:
				require.ErrorIs(t, err, tagset.ErrInvalidTag)
				require.True(t, before == s)
			case found:
				require.NoError(t, err)
			case len(model) == l.MaxTags:
				require.ErrorIs(t, err, tagset.ErrTooManyTags)
				require.True(t, before == s)
			default:
				require.NoError(t, err)
				model = slices.Insert(model, i, tag)
			}
		}
		requireSorted(t, s)
		if diff := cmp.Diff(model, s.Tags(), cmp.Comparer(func(a, b []string) bool {
			return slices.Equal(a, b)
		})); diff != "" {
			t.Fatalf("step %d: tags mismatch (-model +set):\n%s", step, diff)
		}
	}
}

func BenchmarkSet_Add(b *testing.B) {
	names := make([]string, tagset.MaxTags)
	for i := range names {
		names[i] = fmt.Sprintf("tag%d", tagset.MaxTags-i)
	}
	l := tagset.Limits{MaxTags: tagset.MaxTags, MaxTagLen: 16}
	for b.Loop() {
		s := l.New()
		for _, n := range names {
			_ = s.Add(n)
		}
	}
}

func BenchmarkSet_Has(b *testing.B) {
	s := tagset.MustParse("Link,Site,n=1,l=2")
	for b.Loop() {
		_ = s.Has("n=1")
	}
}
