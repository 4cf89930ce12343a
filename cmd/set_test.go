package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type setResultJSON struct {
	Tags []string `json:"tags"`
	Text string   `json:"text"`
	Len  int      `json:"len"`
	Cap  int      `json:"cap"`
}

// Set commands need neither a catalogue nor an author.
func TestSet(t *testing.T) {
	env := newBareEnv(t)

	t.Run("parse", func(t *testing.T) {
		var s setResultJSON
		env.runJSON(&s, "set", "parse", " n=1 , Site,Site ")
		assert.Equal(t, setResultJSON{Tags: []string{"Site", "n=1"}, Text: "Site,n=1", Len: 2, Cap: 4}, s)

		env.equals(env.run("set", "parse", "n=1 , Site,Site"), "Site,n=1")
		env.equals(env.run("set", "parse", ""), "(empty)")
		env.equals(env.run("set", "parse", " , "), "(empty)")
	})

	t.Run("limits from flags", func(t *testing.T) {
		var s setResultJSON
		env.runJSON(&s, "set", "parse", "a,b,c,d,e,f", "--max-tags", "6")
		assert.Equal(t, 6, s.Cap)

		out := env.fails("set", "parse", "a,b,c,d,e")
		env.contains(out, "too many tags: 5 tags (max 4)")

		env.fails("set", "parse", "abcdef", "--max-tag-len", "4")
		env.fails("set", "parse", "a", "--max-tags", "9")
	})

	t.Run("has and subset", func(t *testing.T) {
		env.equals(env.run("set", "has", "Site,n=1", "Site"), "true")
		env.equals(env.run("set", "has", "Site,n=1", "site"), "false")
		env.equals(env.run("set", "subset", "Site,n=1", "n=1"), "true")
		env.equals(env.run("set", "subset", "Site", "Site,n=1"), "false")
	})

	t.Run("common", func(t *testing.T) {
		env.equals(env.run("set", "common", "t1,t2,t3", "t4,t3,t2"), "t2\nt3")
	})

	t.Run("union", func(t *testing.T) {
		env.equals(env.run("set", "union", "a,b", "b,c"), "a\nb\nc")
		out := env.fails("set", "union", "t1,t2,t3", "t4,t3,t2,t5")
		env.contains(out, "too many tags: 5 tags (max 4)")
	})

	t.Run("diff", func(t *testing.T) {
		out := env.run("set", "diff", "a,b", "b,c", "--raw")
		env.contains(out, "- a")
		env.contains(out, "+ c")
	})
}
