// stats.go implements aggregate queries for operational visibility.
//
// Separated to collect read-only, aggregate operations distinct from CRUD.
// All of them use COUNT/MIN/MAX directly in SQL rather than loading rows.

package store

import (
	"context"
	"database/sql"
)

// Stats returns aggregate catalogue statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indices WHERE deleted_at IS NULL`).Scan(&st.Indices)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indices WHERE deleted_at IS NOT NULL`).Scan(&st.Deleted)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT t.tag) FROM index_tags t
		INNER JOIN indices i ON i.id = t.index_id AND i.deleted_at IS NULL`).Scan(&st.Tags)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indices WHERE deleted_at IS NULL AND tags = ''`).Scan(&st.Untagged)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT author) FROM indices WHERE author != ''`).Scan(&st.Authors)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM indices`).Scan(&st.Oldest, &st.Newest)
	if err != nil {
		return nil, err
	}

	// Oldest deletion timestamp (for vacuum age planning)
	var oldestDeleted sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT MIN(deleted_at) FROM indices WHERE deleted_at IS NOT NULL`).Scan(&oldestDeleted)
	if err != nil {
		return nil, err
	}
	if oldestDeleted.Valid {
		st.OldestDeletedAt = oldestDeleted.Int64
	}

	return &st, nil
}
