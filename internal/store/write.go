// write.go implements index creation and modification operations.
//
// Separated from read.go to isolate mutating operations. Every write that
// touches tags rewrites both the canonical text column and the index_tags
// rows inside one transaction, so the two never disagree.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Put inserts a new index.
func (s *SQLiteStore) Put(ctx context.Context, r Record) error {
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	if r.UpdatedAt == 0 {
		r.UpdatedAt = r.CreatedAt
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM indices WHERE id = ?`, r.ID).Scan(&exists)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, r.ID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check index %s: %w", r.ID, err)
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO indices (id, dim, plev, tags, author, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Dim, r.Plev, r.TagText(), r.Author, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert index: %w", err)
		}
		return writeTags(ctx, tx, r.ID, r.Tags)
	})
}

// Retag rewrites the tags of an active index with the result of fn.
func (s *SQLiteStore) Retag(ctx context.Context, id string, fn func(tags []string) ([]string, error)) (*Record, error) {
	var out *Record
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		r, err := scanRecord(tx.QueryRowContext(ctx,
			`SELECT `+recordColumns+` FROM indices WHERE id = ? AND deleted_at IS NULL`, id))
		if err != nil {
			return err
		}

		tags, err := fn(r.Tags)
		if err != nil {
			return err
		}
		r.Tags = tags
		r.UpdatedAt = time.Now().Unix()

		if _, err := tx.ExecContext(ctx, `UPDATE indices SET tags = ?, updated_at = ? WHERE id = ?`,
			r.TagText(), r.UpdatedAt, id); err != nil {
			return fmt.Errorf("update tags: %w", err)
		}
		if err := writeTags(ctx, tx, id, r.Tags); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetPlev sets the prime level of an active index.
func (s *SQLiteStore) SetPlev(ctx context.Context, id string, plev int) (*Record, error) {
	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx, `UPDATE indices SET plev = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		plev, now, id)
	if err != nil {
		return nil, fmt.Errorf("set prime level of %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id, false)
}

// Delete soft-deletes an index by setting its deleted_at timestamp.
// Returns ErrNotFound if the index doesn't exist or is already deleted.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE indices SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the deleted_at timestamp of a soft-deleted index.
// Returns ErrNotFound if the index doesn't exist or isn't deleted.
func (s *SQLiteStore) Restore(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE indices SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("restore %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
