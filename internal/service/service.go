// Package service defines the shared interface for catalogue operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jpl-au/tagidx/index"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

// ErrTagNotFound is returned by Untag when a tag is not on the index.
var ErrTagNotFound = errors.New("tag not on index")

// Entry is a catalogued index together with its bookkeeping.
type Entry struct {
	Index     index.Index
	Author    string
	CreatedAt int64
	UpdatedAt int64
	Deleted   bool
	DeletedAt int64 // unix time of the soft delete, 0 when active
}

// EntryJSON is the API-friendly representation of an Entry.
type EntryJSON struct {
	ID        string   `json:"id"`
	Dim       int      `json:"dim"`
	Plev      int      `json:"plev"`
	Tags      []string `json:"tags"`
	Display   string   `json:"display"`
	Author    string   `json:"author,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Deleted   bool     `json:"deleted,omitempty"`
	DeletedAt string   `json:"deleted_at,omitempty"`
}

// ToJSON converts an Entry to its API representation.
func (e *Entry) ToJSON() EntryJSON {
	j := EntryJSON{
		ID:        e.Index.ID.String(),
		Dim:       e.Index.Dim,
		Plev:      e.Index.Plev,
		Tags:      e.Index.Tags.Tags(),
		Display:   e.Index.String(),
		Author:    e.Author,
		CreatedAt: time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt: time.Unix(e.UpdatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   e.Deleted,
	}
	if e.DeletedAt != 0 {
		j.DeletedAt = time.Unix(e.DeletedAt, 0).UTC().Format(time.RFC3339)
	}
	return j
}

// ListOptions filters a List call.
type ListOptions struct {
	Tags           string // comma-separated tags every result must carry
	IncludeDeleted bool
	DeletedOnly    bool
}

// Service defines all catalogue operations.
//
// Extensions should use catalog.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
//	svc, err := catalog.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	e, err := svc.Create(ctx, 2, "Site,n=1", "alice")
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// Limits returns the tag bounds this catalogue enforces.
	Limits() tagset.Limits

	// Create catalogues a new index of dimension dim with the given
	// comma-separated tags.
	Create(ctx context.Context, dim int, tags, author string) (*Entry, error)

	// Link catalogues a new index of dimension dim tagged only "Link".
	Link(ctx context.Context, dim int, author string) (*Entry, error)

	// Sim catalogues a copy of an index with a fresh id.
	Sim(ctx context.Context, id, author string) (*Entry, error)

	// Import catalogues an existing index, keeping its id and prime level.
	// Returns store.ErrAlreadyExists if the id is already catalogued.
	Import(ctx context.Context, i index.Index, author string) (*Entry, error)

	// Get returns an index by its full id.
	Get(ctx context.Context, id string) (*Entry, error)

	// Resolve returns an index by full id or unique id prefix (at least
	// four hex digits). Returns store.ErrAmbiguous when the prefix matches
	// more than one index.
	Resolve(ctx context.Context, id string, includeDeleted bool) (*Entry, error)

	// List returns indices in creation order, optionally filtered.
	List(ctx context.Context, opts ListOptions) ([]Entry, error)

	// Find returns active indices carrying every tag in tags.
	Find(ctx context.Context, tags string) ([]Entry, error)

	// Tag adds every tag in the comma-separated list to an index. Either
	// all are added or, on error, none are.
	Tag(ctx context.Context, id, tags, author string) (*Entry, error)

	// Untag removes every tag in the comma-separated list from an index.
	// Returns ErrTagNotFound (and removes nothing) if any is absent.
	Untag(ctx context.Context, id, tags, author string) (*Entry, error)

	// Common returns the tags two indices share.
	Common(ctx context.Context, a, b string) (tagset.Set, error)

	// Prime raises the prime level of an index by n (n may be negative
	// as long as the result is not).
	Prime(ctx context.Context, id string, n int) (*Entry, error)

	// Delete soft-deletes an index (can be restored).
	Delete(ctx context.Context, id string) (*Entry, error)

	// Restore un-deletes a soft-deleted index.
	Restore(ctx context.Context, id string) (*Entry, error)

	// Vacuum permanently removes soft-deleted indices. If olderThan is set,
	// only those deleted before that duration ago.
	Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error)

	// Tags returns every tag in use with the number of indices carrying it.
	Tags(ctx context.Context) ([]store.TagCount, error)

	// Stats returns aggregate catalogue statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// DB returns the underlying SQLite connection for extensions that
	// keep their own tables. Do not close it directly.
	DB() *sql.DB
}
