package diff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpl-au/tagidx/tagset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	a := tagset.MustParse("Link,Site,n=1")
	b := tagset.MustParse("Site,n=2,Link")

	r := Compute(a, b, "a", "b")
	assert.Equal(t, []string{"n=1"}, r.Removed)
	assert.Equal(t, []string{"n=2"}, r.Added)
	assert.Equal(t, []string{"Link", "Site"}, r.Kept)
	assert.False(t, r.Equal())
	assert.Equal(t, "  Link\n  Site\n- n=1\n+ n=2\n", r.Diff)
}

func TestCompute_Equal(t *testing.T) {
	a := tagset.MustParse("x,y")
	r := Compute(a, tagset.MustParse("y, x"), "a", "b")
	assert.True(t, r.Equal())
	assert.Equal(t, "  x\n  y\n", r.Diff)
}

func TestCompute_Empty(t *testing.T) {
	r := Compute(tagset.New(), tagset.MustParse("Site"), "a", "b")
	assert.Empty(t, r.Removed)
	assert.Equal(t, []string{"Site"}, r.Added)
	assert.Equal(t, "+ Site\n", r.Diff)
}

func TestFormat(t *testing.T) {
	r := Compute(tagset.MustParse("a"), tagset.MustParse("b"), "old", "new")
	assert.Equal(t, "--- old\n+++ new\n- a\n+ b\n", r.Format(false))

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- a\033[0m")
	assert.Contains(t, coloured, "\033[32m+ b\033[0m")

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, false))
	assert.Equal(t, r.Format(false), buf.String())
}

func TestColourise_Context(t *testing.T) {
	out := Colourise("  same\n- gone\n")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  same", lines[0])
}
