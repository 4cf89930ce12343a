/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE opens the catalogue lazily. Only commands that
// need it trigger extension init, so bootstrap commands (init, guide,
// config, set) work before any catalogue exists. The noStoreCommands map
// controls which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagidx",
	Short: "Catalogue of tagged tensor indices",
	Long: `A catalogue of tensor indices, each labelled with a small sorted set of tags.

Tags are short strings kept sorted and deduplicated, with at most a fixed
number per index. Indices carry a dimension, a prime level and a unique id,
and are stored in a local SQLite catalogue with soft delete and an audit log.`,
	Version: version.Short(),
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[commandKey(cmd)] && author == "" {
			return fmt.Errorf("author not configured (checked .tagidx/config.yaml and ~/.tagidx/config.yaml)\n\nRun: tagidx config author.name \"Your Name\"\n\nSee 'tagidx guide config' for local vs global options.")
		}

		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "tagidx index show 3f2a", returns "index".
// For "tagidx tag add 3f2a Site", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// commandKey returns the command path below the root.
// For "tagidx tag add 3f2a Site", returns "tag add".
func commandKey(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and closes
// the shared catalogue before exit. Exit code 1 indicates error.
func Execute() {
	// The audit log is best-effort.
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
