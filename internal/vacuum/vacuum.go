// Package vacuum handles permanent deletion of soft-deleted indices.
// This is the only way to reclaim storage; soft-deleted indices remain
// restorable until vacuum removes them.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/tagidx/internal/progress"
	"github.com/jpl-au/tagidx/internal/service"
)

// Options configures vacuum scope.
type Options struct {
	OlderThan *time.Duration // keep deletions newer than this
	DryRun    bool           // preview without deleting
}

// Result reports what was (or would be) deleted.
type Result struct {
	Deleted int      `json:"deleted"`
	IDs     []string `json:"ids,omitempty"` // populated in dry-run mode
}

// Run permanently removes soft-deleted indices. This operation is
// irreversible; use DryRun first to preview what will be deleted.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	if opts.DryRun {
		return preview(ctx, w, svc, opts, time.Now())
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	count, err := svc.Vacuum(ctx, opts.OlderThan)
	spin.Stop()

	if err != nil {
		return Result{}, err
	}

	if count == 0 {
		fmt.Fprintln(w, "No indices to vacuum")
	} else {
		fmt.Fprintf(w, "Vacuumed %d index(es)\n", count)
	}
	return Result{Deleted: int(count)}, nil
}

// preview lists the indices Run would remove at time now.
func preview(ctx context.Context, w io.Writer, svc service.Service, opts Options, now time.Time) (Result, error) {
	var result Result

	entries, err := svc.List(ctx, service.ListOptions{DeletedOnly: true})
	if err != nil {
		return result, err
	}

	for _, e := range entries {
		if opts.OlderThan != nil && e.DeletedAt >= now.Add(-*opts.OlderThan).Unix() {
			continue
		}
		fmt.Fprintf(w, "Would delete: %s (deleted %s)\n",
			e.Index,
			time.Unix(e.DeletedAt, 0).Format("2006-01-02 15:04"))
		result.IDs = append(result.IDs, e.Index.ID.String())
		result.Deleted++
	}

	if result.Deleted == 0 {
		fmt.Fprintln(w, "No indices to vacuum")
	} else {
		fmt.Fprintf(w, "\nWould delete %d index(es)\n", result.Deleted)
	}
	return result, nil
}
