package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	env := newBareEnv(t)

	env.run("config", "author.name", "Ada")
	env.equals(env.run("config", "author.name"), "Ada")

	var all map[string]string
	env.runJSON(&all, "config")
	assert.Equal(t, "Ada", all["author.name"])

	t.Run("unknown key", func(t *testing.T) {
		out := env.fails("config", "nope", "x")
		env.contains(out, "unknown config key")
	})

	t.Run("limits validated", func(t *testing.T) {
		env.fails("config", "limits.max_tags", "9")
		env.fails("config", "limits.max_tag_len", "zero")
		env.run("config", "limits.max_tag_len", "32")
	})

	t.Run("local wins", func(t *testing.T) {
		env.run("init")
		env.run("config", "author.name", "Local", "--local")
		env.equals(env.run("config", "author.name"), "Local")
	})
}
