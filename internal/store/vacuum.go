// vacuum.go implements permanent deletion of soft-deleted indices.
//
// Separated because vacuum is destructive and irreversible, unlike Delete.
//
// Design: The olderThan parameter keeps recent deletions recoverable while
// cleaning up old trash.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Vacuum permanently removes soft-deleted indices and their tag rows.
// If olderThan is non-nil, only indices deleted before that duration ago
// are removed. Returns the number of indices removed.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error) {
	var removed int64

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		cond := `deleted_at IS NOT NULL`
		var args []any
		if olderThan != nil {
			cond += ` AND deleted_at < ?`
			args = append(args, time.Now().Add(-*olderThan).Unix())
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM index_tags WHERE index_id IN (SELECT id FROM indices WHERE `+cond+`)`, args...); err != nil {
			return fmt.Errorf("vacuum tags: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM indices WHERE `+cond, args...)
		if err != nil {
			return fmt.Errorf("vacuum indices: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed = n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
