// tags.go implements the per-element tag table behind tag filters.
//
// Separated from write.go because index_tags is a derived view of the tags
// column: it is only ever rewritten wholesale from a Record, never edited
// one tag at a time.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// writeTags replaces the index_tags rows of id with tags.
func writeTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM index_tags WHERE index_id = ?`, id); err != nil {
		return fmt.Errorf("clear tags of %s: %w", id, err)
	}
	for _, t := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO index_tags (index_id, tag) VALUES (?, ?)`, id, t); err != nil {
			return fmt.Errorf("add tag %q to %s: %w", t, id, err)
		}
	}
	return nil
}

// AllTags returns every tag on an active index with its usage count.
// Supports discovery and shell completion.
func (s *SQLiteStore) AllTags(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tag, COUNT(*) FROM index_tags t
		INNER JOIN indices i ON i.id = t.index_id AND i.deleted_at IS NULL
		GROUP BY t.tag ORDER BY t.tag`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
