// Package rm provides soft deletion of indices.
//
// Deletion is always soft. Indices are marked deleted but remain
// restorable until vacuum permanently removes them.
package rm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/tagidx/internal/service"
)

// ErrNoTarget is returned when neither ids nor a tag filter are given.
var ErrNoTarget = errors.New("requires index ids or a tag filter")

// Options configures a delete operation.
type Options struct {
	Tags string // delete every active index carrying these tags
}

// Result contains the outcome of a delete operation.
type Result struct {
	Deleted []string `json:"deleted"` // full ids of deleted indices
}

// Run soft-deletes the given indices, or with Options.Tags every active
// index carrying those tags. Every id is resolved before anything is
// deleted, so an unknown or ambiguous id deletes nothing.
func Run(ctx context.Context, w io.Writer, svc service.Service, ids []string, opts Options) (Result, error) {
	var result Result

	if len(ids) == 0 && opts.Tags == "" {
		return result, ErrNoTarget
	}
	if len(ids) > 0 && opts.Tags != "" {
		return result, fmt.Errorf("ids and a tag filter cannot be used together")
	}

	var targets []service.Entry
	if opts.Tags != "" {
		entries, err := svc.Find(ctx, opts.Tags)
		if err != nil {
			return result, err
		}
		targets = entries
	}
	for _, id := range ids {
		e, err := svc.Resolve(ctx, id, false)
		if err != nil {
			return result, err
		}
		targets = append(targets, *e)
	}

	for _, e := range targets {
		if _, err := svc.Delete(ctx, e.Index.ID.String()); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, e.Index.ID.String())
		fmt.Fprintf(w, "Deleted %s\n", e.Index)
	}

	if len(result.Deleted) == 0 {
		fmt.Fprintf(w, "No indices tagged %s\n", opts.Tags)
	}
	return result, nil
}
