// Package ls provides index listing with filtering and sorting.
//
// Filtering by tag subset and deletion state happens in the store; sorting
// and presentation happen here so the extension command and its tests share
// one code path.
package ls

import (
	"cmp"
	"context"
	"io"
	"slices"

	"github.com/jpl-au/tagidx/internal/format"
	"github.com/jpl-au/tagidx/internal/service"
)

// SortField specifies how to sort results.
type SortField string

const (
	SortNone SortField = ""     // creation order
	SortTime SortField = "time" // most recently updated first
	SortTags SortField = "tags" // by canonical tag text
	SortDim  SortField = "dim"  // by dimension, smallest first
)

// SortFields lists the accepted sort names.
var SortFields = []SortField{SortTime, SortTags, SortDim}

// Options configures a list operation.
type Options struct {
	Tags        string    // comma-separated tags every result must carry
	IncludeAll  bool      // include deleted indices
	DeletedOnly bool      // only deleted indices
	Dim         *int      // only indices of this dimension
	Tree        bool      // group by tag
	Long        bool      // long format with metadata
	Sort        SortField // sort field
	Reverse     bool      // reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Entries []service.Entry
}

// Count returns the number of indices listed.
func (r Result) Count() int { return len(r.Entries) }

// ToJSON converts the result to its API representation.
func (r Result) ToJSON() []service.EntryJSON {
	out := make([]service.EntryJSON, len(r.Entries))
	for i := range r.Entries {
		out[i] = r.Entries[i].ToJSON()
	}
	return out
}

// Run lists indices and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	entries, err := svc.List(ctx, service.ListOptions{
		Tags:           opts.Tags,
		IncludeDeleted: opts.IncludeAll,
		DeletedOnly:    opts.DeletedOnly,
	})
	if err != nil {
		return result, err
	}

	if opts.Dim != nil {
		entries = slices.DeleteFunc(entries, func(e service.Entry) bool { return e.Index.Dim != *opts.Dim })
	}
	sortEntries(entries, opts.Sort, opts.Reverse)
	result.Entries = entries

	switch {
	case opts.Tree:
		err = format.Tree(w, entries)
	case opts.Long:
		err = format.Long(w, entries)
	default:
		err = format.List(w, entries)
	}
	return result, err
}

// sortEntries orders entries in place. Ties fall back to the id so output
// is stable across runs.
func sortEntries(entries []service.Entry, field SortField, reverse bool) {
	var by func(a, b service.Entry) int
	switch field {
	case SortTime:
		by = func(a, b service.Entry) int { return cmp.Compare(b.UpdatedAt, a.UpdatedAt) }
	case SortTags:
		by = func(a, b service.Entry) int { return cmp.Compare(a.Index.Tags.String(), b.Index.Tags.String()) }
	case SortDim:
		by = func(a, b service.Entry) int { return cmp.Compare(a.Index.Dim, b.Index.Dim) }
	default:
		if reverse {
			slices.Reverse(entries)
		}
		return
	}

	slices.SortStableFunc(entries, func(a, b service.Entry) int {
		c := by(a, b)
		if c == 0 {
			c = cmp.Compare(a.Index.ID.String(), b.Index.ID.String())
		}
		if reverse {
			return -c
		}
		return c
	})
}
