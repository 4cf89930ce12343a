// guide.go implements the "tagidx guide" and "tagidx llm" commands.
//
// Separated from extension.go to isolate documentation rendering, including
// terminal detection and glamour markdown formatting.
//
// Design: Guides are embedded in the binary via the guide package. Terminal
// output gets glamour rendering; a pipe gets raw markdown so an LLM can load
// it as context.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the tagidx usage guide",
		Long: `Outputs the tagidx guide for LLMs and humans.

  tagidx guide           # main guide
  tagidx guide tags      # tag sets and their limits
  tagidx guide index     # indices, links and prime levels`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			topics, _ := guide.List()
			return topics, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}
			render(content)
			return nil
		},
	}
}

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			render(content)
			return nil
		},
	}
}

// render writes markdown to the command output, styled when stdout is a
// terminal.
func render(content string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(content, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return
		}
	}
	fmt.Fprint(cmd.Out(), content)
}
