// Package tag provides index tagging operations for the CLI layer.
//
// This package orchestrates tag add/remove/list/diff, handling both the
// service calls and output formatting. Changes are all-or-nothing: the
// service rejects a change that would overflow the set or remove an absent
// tag without touching the index.
package tag

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/tagidx/internal/diff"
	"github.com/jpl-au/tagidx/internal/format"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
)

// Result contains the outcome of a tag operation.
type Result struct {
	ID     string           `json:"id,omitempty"`
	Change string           `json:"change,omitempty"` // the tags given
	Action string           `json:"action,omitempty"`
	Tags   []string         `json:"tags"`             // the index's tags afterwards
	Counts []store.TagCount `json:"counts,omitempty"` // catalogue-wide listing
}

// Add adds comma-separated tags to an index on behalf of author.
func Add(ctx context.Context, w io.Writer, svc service.Service, id, tags, author string) (Result, error) {
	result := Result{ID: id, Change: tags, Action: "add"}

	e, err := svc.Tag(ctx, id, tags, author)
	if err != nil {
		return result, err
	}
	result.ID = e.Index.ID.String()
	result.Tags = e.Index.Tags.Tags()

	fmt.Fprintf(w, "Tagged %s\n", e.Index)
	return result, nil
}

// Remove removes comma-separated tags from an index on behalf of author.
func Remove(ctx context.Context, w io.Writer, svc service.Service, id, tags, author string) (Result, error) {
	result := Result{ID: id, Change: tags, Action: "remove"}

	e, err := svc.Untag(ctx, id, tags, author)
	if err != nil {
		return result, err
	}
	result.ID = e.Index.ID.String()
	result.Tags = e.Index.Tags.Tags()

	fmt.Fprintf(w, "Untagged %s\n", e.Index)
	return result, nil
}

// List lists the tags of an index, or every tag in use with its count
// when id is empty.
func List(ctx context.Context, w io.Writer, svc service.Service, id string) (Result, error) {
	result := Result{ID: id}

	if id == "" {
		counts, err := svc.Tags(ctx)
		if err != nil {
			return result, err
		}
		result.Counts = counts
		for _, c := range counts {
			result.Tags = append(result.Tags, c.Tag)
		}
		return result, format.TagCounts(w, counts)
	}

	e, err := svc.Resolve(ctx, id, true)
	if err != nil {
		return result, err
	}
	result.ID = e.Index.ID.String()
	result.Tags = e.Index.Tags.Tags()
	return result, format.Set(w, e.Index.Tags)
}

// Diff compares the tags of two indices.
func Diff(ctx context.Context, w io.Writer, svc service.Service, a, b string, colour bool) (diff.Result, error) {
	x, err := svc.Resolve(ctx, a, true)
	if err != nil {
		return diff.Result{}, err
	}
	y, err := svc.Resolve(ctx, b, true)
	if err != nil {
		return diff.Result{}, err
	}

	r := diff.Compute(x.Index.Tags, y.Index.Tags, x.Index.String(), y.Index.String())
	return r, r.Write(w, colour)
}
