package cmd

import "testing"

func TestGuide(t *testing.T) {
	env := newBareEnv(t)

	env.contains(env.run("guide"), "# tagidx")
	env.contains(env.run("guide", "limits"), "max_tag_len")
	env.contains(env.run("llm"), "tagidx for LLMs")

	out := env.fails("guide", "nope")
	env.contains(out, "Available:")
	env.contains(out, "tags")
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)
	env.contains(env.run("version"), "Tag Ceiling:  8 tags of 32 characters")
}
