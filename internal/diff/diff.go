// Package diff computes and formats differences between two tag sets, as
// shown by "tagidx set diff" and "tagidx tag diff".
//
// Each set is laid out one tag per line in canonical order and compared with
// a line-mode diff, so the output reads like a unified diff of two sorted
// lists.
package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/tagidx/tagset"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/term"
)

// Result holds diff output.
type Result struct {
	Old     string   `json:"old"`     // old label
	New     string   `json:"new"`     // new label
	Removed []string `json:"removed"` // tags only in the old set
	Added   []string `json:"added"`   // tags only in the new set
	Kept    []string `json:"kept"`    // tags in both
	Diff    string   `json:"diff"`    // plain diff text
}

// Equal reports whether the two sets had the same tags.
func (r Result) Equal() bool {
	return len(r.Removed) == 0 && len(r.Added) == 0
}

// Compute returns the difference between two tag sets.
func Compute(oldSet, newSet tagset.Set, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, arr := dmp.DiffLinesToChars(lines(oldSet), lines(newSet))
	d := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), arr)

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Removed: oldSet.Difference(newSet).Tags(),
		Added:   newSet.Difference(oldSet).Tags(),
		Kept:    oldSet.Common(newSet).Tags(),
		Diff:    format(d),
	}
}

// lines renders a set one tag per line.
func lines(s tagset.Set) string {
	var b strings.Builder
	for t := range s.All() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			prefix = "  "
		}
		for _, l := range strings.Split(text, "\n") {
			b.WriteString(prefix + l + "\n")
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}

// Write writes the formatted diff to w.
func (r Result) Write(w io.Writer, colour bool) error {
	_, err := io.WriteString(w, r.Format(colour))
	return err
}

// Colour reports whether diff output should be coloured: never with raw,
// otherwise only when stdout is a terminal.
func Colour(raw bool) bool {
	return !raw && term.IsTerminal(int(os.Stdout.Fd()))
}
