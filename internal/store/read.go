// read.go implements index retrieval operations.
//
// Separated from write.go to isolate read-only queries. None of these
// functions modify the database.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Get retrieves an index by its full id.
func (s *SQLiteStore) Get(ctx context.Context, id string, includeDeleted bool) (*Record, error) {
	q := `SELECT ` + recordColumns + ` FROM indices WHERE id = ?`
	if !includeDeleted {
		q += ` AND deleted_at IS NULL`
	}
	return scanRecord(s.db.QueryRowContext(ctx, q, id))
}

// ByPrefix retrieves the single index whose id starts with prefix.
// Prefixes are matched with a range scan on the primary key rather than
// LIKE, so '%' and '_' in the input have no special meaning.
func (s *SQLiteStore) ByPrefix(ctx context.Context, prefix string, includeDeleted bool) (*Record, error) {
	q := `SELECT ` + recordColumns + ` FROM indices WHERE id >= ? AND id < ?`
	if !includeDeleted {
		q += ` AND deleted_at IS NULL`
	}
	q += ` ORDER BY id LIMIT 2`

	rows, err := s.db.QueryContext(ctx, q, prefix, prefix+"\xff")
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", prefix, err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	switch len(recs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &recs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %s and %s", ErrAmbiguous, prefix, recs[0].ID, recs[1].ID)
	}
}

// List returns indices in creation order. When opts.Tags is non-empty only
// indices carrying every one of those tags are returned.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + recordColumns + ` FROM indices`)

	var args []any
	var conditions []string

	switch {
	case opts.DeletedOnly:
		conditions = append(conditions, `deleted_at IS NOT NULL`)
	case !opts.IncludeDeleted:
		conditions = append(conditions, `deleted_at IS NULL`)
	}

	if len(opts.Tags) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(opts.Tags)), ",")
		conditions = append(conditions, `id IN (
			SELECT index_id FROM index_tags WHERE tag IN (`+marks+`)
			GROUP BY index_id HAVING COUNT(DISTINCT tag) = ?)`)
		for _, t := range opts.Tags {
			args = append(args, t)
		}
		args = append(args, len(distinct(opts.Tags)))
	}

	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}
	b.WriteString(` ORDER BY created_at, rowid`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list indices: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// distinct returns tags without repeats, preserving first occurrence.
func distinct(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
