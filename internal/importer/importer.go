// Package importer loads indices from an export file into a catalogue.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jpl-au/tagidx/index"
	"github.com/jpl-au/tagidx/internal/exporter"
	"github.com/jpl-au/tagidx/internal/progress"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

// Options configures an import.
type Options struct {
	DryRun bool   // show what would be imported without importing
	Author string // used for items that carry no author
}

// Result contains the outcome of an import.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // ids already catalogued
	IDs      []string `json:"ids"`     // ids that were, or would be, imported
}

// Run imports every index in the export file at src.
//
// Items are checked before anything is written: a malformed id or a tag
// that does not fit this catalogue's limits aborts the import untouched.
// Ids that are already catalogued are skipped.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	data, err := os.ReadFile(src)
	if err != nil {
		return result, err
	}
	f, err := exporter.Decode(data, exporter.IsJSON(src))
	if err != nil {
		return result, fmt.Errorf("%s: %w", src, err)
	}

	indices, err := Indices(f, svc.Limits())
	if err != nil {
		return result, fmt.Errorf("%s: %w", src, err)
	}

	prog := progress.New("Importing", len(indices))
	defer prog.Done()

	for n, i := range indices {
		author := f.Indices[n].Author
		if author == "" {
			author = opts.Author
		}

		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s\n", i)
			result.IDs = append(result.IDs, i.ID.String())
			prog.Increment()
			prog.Print()
			continue
		}

		_, err := svc.Import(ctx, i, author)
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			fmt.Fprintf(w, "Skipped (exists): %s\n", i)
			result.Skipped++
		case err != nil:
			return result, fmt.Errorf("importing %s: %w", i.ID, err)
		default:
			result.Imported++
			result.IDs = append(result.IDs, i.ID.String())
		}
		prog.Increment()
		prog.Print()
	}

	if opts.DryRun {
		fmt.Fprintf(w, "\nWould import %d index(es)\n", len(result.IDs))
	} else {
		fmt.Fprintf(w, "Imported %d index(es), skipped %d\n", result.Imported, result.Skipped)
	}
	return result, nil
}

// Indices converts the items of f to indices whose tags fit limits.
func Indices(f exporter.File, limits tagset.Limits) ([]index.Index, error) {
	out := make([]index.Index, 0, len(f.Indices))
	for n, it := range f.Indices {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, fmt.Errorf("item %d: id %q: %w", n+1, it.ID, err)
		}
		if it.Dim < 1 {
			return nil, fmt.Errorf("item %d: %w: %d", n+1, index.ErrInvalidDim, it.Dim)
		}
		if it.Plev < 0 {
			return nil, fmt.Errorf("item %d: %w: %d", n+1, index.ErrInvalidPlev, it.Plev)
		}
		tags := limits.New()
		for _, t := range it.Tags {
			if err := tags.Add(t); err != nil {
				return nil, fmt.Errorf("item %d: %w", n+1, err)
			}
		}
		out = append(out, index.Index{ID: id, Dim: it.Dim, Plev: it.Plev, Tags: tags})
	}
	return out, nil
}
