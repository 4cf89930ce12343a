// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalogue operations while this package handles presentation concerns
// like column alignment and tree rendering.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

const (
	dateTime = "2006-01-02 15:04"
	untagged = "(untagged)"

	// Empty is printed in place of an empty tag set.
	Empty = "(empty)"
)

func deletedSuffix(e service.Entry) string {
	if e.Deleted {
		return " [deleted]"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// List prints entries one per line as "shortid  (dim=..|id=..|"tags")".
func List(w io.Writer, entries []service.Entry) error {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s%s\n", e.Index.ShortID(), e.Index, deletedSuffix(e))
	}
	return nil
}

// Long prints entries with id, dimension, prime level, date, author and tags.
//
// Fixed-width columns come first; AUTHOR is padded to the widest author so
// the variable-length TAGS column starts in the same place on every row.
func Long(w io.Writer, entries []service.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	maxAuthor := len("AUTHOR")
	for _, e := range entries {
		maxAuthor = max(maxAuthor, len(orDash(e.Author)))
	}

	fmt.Fprintf(w, "%-8s  %5s  %4s  %-16s  %-*s  %s\n", "ID", "DIM", "PLEV", "UPDATED", maxAuthor, "AUTHOR", "TAGS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %5d  %4d  %s  %-*s  %s%s\n",
			e.Index.ShortID(),
			e.Index.Dim,
			e.Index.Plev,
			time.Unix(e.UpdatedAt, 0).Format(dateTime),
			maxAuthor, orDash(e.Author),
			orDash(e.Index.Tags.String()),
			deletedSuffix(e))
	}
	return nil
}

// Tree prints entries grouped under each tag they carry, tags in canonical
// order. Untagged entries are grouped under "(untagged)".
func Tree(w io.Writer, entries []service.Entry) error {
	groups := map[string][]service.Entry{}
	var names []string
	add := func(name string, e service.Entry) {
		if _, ok := groups[name]; !ok {
			names = append(names, name)
		}
		groups[name] = append(groups[name], e)
	}
	for _, e := range entries {
		if e.Index.Tags.IsEmpty() {
			add(untagged, e)
			continue
		}
		for t := range e.Index.Tags.All() {
			add(t.String(), e)
		}
	}
	slices.SortFunc(names, compareGroups)

	for _, name := range names {
		fmt.Fprintln(w, name)
		members := groups[name]
		for i, e := range members {
			connector := "├── "
			if i == len(members)-1 {
				connector = "└── "
			}
			fmt.Fprintf(w, "%s%s%s\n", connector, e.Index, deletedSuffix(e))
		}
	}
	return nil
}

// compareGroups orders tag names the way a tag set does, byte-wise, with
// the untagged group last.
func compareGroups(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == untagged:
		return 1
	case b == untagged:
		return -1
	}
	return strings.Compare(a, b)
}

// Show prints a single entry as labelled fields.
func Show(w io.Writer, e service.Entry) error {
	fmt.Fprintf(w, "Index:   %s\n", e.Index)
	fmt.Fprintf(w, "ID:      %s\n", e.Index.ID)
	fmt.Fprintf(w, "Dim:     %d\n", e.Index.Dim)
	fmt.Fprintf(w, "Plev:    %d\n", e.Index.Plev)
	fmt.Fprintf(w, "Tags:    %s\n", orDash(e.Index.Tags.String()))
	fmt.Fprintf(w, "Author:  %s\n", orDash(e.Author))
	fmt.Fprintf(w, "Created: %s\n", time.Unix(e.CreatedAt, 0).Format(dateTime))
	fmt.Fprintf(w, "Updated: %s\n", time.Unix(e.UpdatedAt, 0).Format(dateTime))
	if e.Deleted {
		fmt.Fprintf(w, "Deleted: %s\n", time.Unix(e.DeletedAt, 0).Format(dateTime))
	}
	return nil
}

// Set prints a tag set one tag per line, or "(empty)".
func Set(w io.Writer, s tagset.Set) error {
	if s.IsEmpty() {
		fmt.Fprintln(w, Empty)
		return nil
	}
	for t := range s.All() {
		fmt.Fprintln(w, t)
	}
	return nil
}

// TagCounts prints tags with the number of indices carrying each.
func TagCounts(w io.Writer, counts []store.TagCount) error {
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Tag))
	}
	for _, c := range counts {
		fmt.Fprintf(w, "%-*s  %d\n", width, c.Tag, c.Count)
	}
	return nil
}

// Stats prints catalogue statistics under the catalogue's limits.
func Stats(w io.Writer, st *store.Stats, limits tagset.Limits) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Indices:   %d\n", st.Indices)
	fmt.Fprintf(&b, "Deleted:   %d\n", st.Deleted)
	fmt.Fprintf(&b, "Tags:      %d\n", st.Tags)
	fmt.Fprintf(&b, "Untagged:  %d\n", st.Untagged)
	fmt.Fprintf(&b, "Authors:   %d\n", st.Authors)
	fmt.Fprintf(&b, "Limits:    %d tags of up to %d characters\n", limits.MaxTags, limits.MaxTagLen)
	if st.Indices > 0 {
		fmt.Fprintf(&b, "Oldest:    %s\n", time.Unix(st.Oldest, 0).Format(dateTime))
		fmt.Fprintf(&b, "Newest:    %s\n", time.Unix(st.Newest, 0).Format(dateTime))
	}
	if st.OldestDeletedAt > 0 {
		fmt.Fprintf(&b, "Oldest deletion: %s\n", time.Unix(st.OldestDeletedAt, 0).Format(dateTime))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
