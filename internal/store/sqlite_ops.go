// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver
// registration, row scanning) from the catalogue queries.
//
// Design: WAL mode with busy timeout. WAL allows concurrent readers during
// writes, which matters when the MCP server and the CLI share a catalogue.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: readers don't block the writer and vice versa.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Wait up to 5 seconds for a competing writer instead of failing with
	// "database is locked".
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// NORMAL is safe against corruption under WAL. Only the last
	// transaction can be lost on an OS crash.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// recordColumns is the column list scanRecord expects, in order.
const recordColumns = `id, dim, plev, tags, author, created_at, updated_at, deleted_at`

// scanRec extracts a Record from a database row. The tags column holds the
// canonical comma-joined text; an empty string is an empty set.
func scanRec(sc scanner) (Record, error) {
	var r Record
	var tags string
	var del sql.NullInt64

	err := sc.Scan(&r.ID, &r.Dim, &r.Plev, &tags, &r.Author, &r.CreatedAt, &r.UpdatedAt, &del)
	if err != nil {
		return r, err
	}

	r.Tags = splitTags(tags)
	if del.Valid {
		r.DeletedAt = &del.Int64
	}
	return r, nil
}

// scanRecord converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func scanRecord(row *sql.Row) (*Record, error) {
	r, err := scanRec(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}
	return &r, nil
}

// scanRecords iterates over query results, collecting records into a slice.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		r, err := scanRec(rows)
		if err != nil {
			return nil, fmt.Errorf("scan index: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back;
// otherwise it is committed.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
