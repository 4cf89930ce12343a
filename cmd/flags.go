/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions read these through exported accessors rather than the
// variables themselves.
//
// Design: Flags are package-level variables bound to the root command. The
// catalogue location resolves flag first, then environment (TAGIDX_DB,
// TAGIDX_DIR), then discovery.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/spf13/cobra"
)

// Environment variables consulted when the matching flag is unset.
const (
	EnvDB  = "TAGIDX_DB"
	EnvDir = "TAGIDX_DIR"
)

var validOutputFormats = []string{"json"}

var (
	output string
	author string
	force  bool
	db     string
	dir    string
)

// out is the output writer for commands. Tests can replace it.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value, or the configured author.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the resolved catalogue name.
// Priority: --db flag > TAGIDX_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv(EnvDB)
}

// Dir returns the explicit catalogue directory if set.
// Priority: --dir flag > TAGIDX_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv(EnvDir)
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil without writing if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error otherwise.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the default author from config.
// Returns empty string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

// TagLimits resolves tag limits for commands that work without a catalogue.
// The --max-tags and --max-tag-len flags, when the command defines and sets
// them, override the limits.* config keys.
func TagLimits(c *cobra.Command) (tagset.Limits, error) {
	cfg, err := config.Load()
	if err != nil {
		return tagset.Limits{}, err
	}
	limits := cfg.TagLimits()
	if f := c.Flags().Lookup(extension.FlagMaxTags); f != nil && f.Changed {
		limits.MaxTags, _ = c.Flags().GetInt(extension.FlagMaxTags)
	}
	if f := c.Flags().Lookup(extension.FlagMaxTagLen); f != nil && f.Changed {
		limits.MaxTagLen, _ = c.Flags().GetInt(extension.FlagMaxTagLen)
	}
	return limits, limits.Validate()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Author recorded on changes")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Catalogue name (e.g., mps for tagidx-mps.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Catalogue directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
