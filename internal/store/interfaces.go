// interfaces.go defines the storage abstraction for index persistence.
//
// Separated from the SQLite implementation so that consumers depend only on
// the capabilities they need (Reader, Writer, Maintainer).
//
// Design: Deletion is soft. An index is marked deleted and can be restored
// until Vacuum permanently purges it. Tags are stored twice: once as the
// canonical comma-joined text on the index row, and once per element in
// index_tags so that tag filters run in SQL.

package store

import (
	"context"
	"database/sql"
	"time"
)

// Reader defines read-only operations for retrieving indices and metadata.
type Reader interface {
	// Get retrieves an index by its full id. Use includeDeleted to reach
	// soft-deleted indices for restore.
	Get(ctx context.Context, id string, includeDeleted bool) (*Record, error)

	// ByPrefix retrieves the single index whose id starts with prefix.
	// Returns ErrNotFound when nothing matches and ErrAmbiguous when more
	// than one index does.
	ByPrefix(ctx context.Context, prefix string, includeDeleted bool) (*Record, error)

	// List returns indices in creation order, optionally restricted to
	// those carrying every tag in opts.Tags.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// AllTags returns every tag in use on active indices with the number of
	// indices carrying it, ordered by tag.
	AllTags(ctx context.Context) ([]TagCount, error)

	// Stats returns aggregate counts for the catalogue.
	Stats(ctx context.Context) (*Stats, error)

	// Meta returns a catalogue-wide setting. Returns ErrNotFound if unset.
	Meta(ctx context.Context, key string) (string, error)
}

// Writer defines operations that modify indices.
type Writer interface {
	// Put inserts a new index. Returns ErrAlreadyExists if the id is taken.
	Put(ctx context.Context, r Record) error

	// Retag loads the tags of an active index, passes them to fn and writes
	// back what fn returns, all in one transaction. If fn fails nothing is
	// written.
	Retag(ctx context.Context, id string, fn func(tags []string) ([]string, error)) (*Record, error)

	// SetPlev sets the prime level of an active index.
	SetPlev(ctx context.Context, id string, plev int) (*Record, error)

	// Delete soft-deletes an index.
	Delete(ctx context.Context, id string) error

	// Restore recovers a soft-deleted index.
	Restore(ctx context.Context, id string) error

	// SetMeta stores a catalogue-wide setting.
	SetMeta(ctx context.Context, key, value string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted indices.
	Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error)
}

// Store defines the persistence interface for indices.
type Store interface {
	Reader
	Writer
	Maintainer
}
