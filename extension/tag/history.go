// history.go stores and reads the tag history table.

package tag

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	actionCreate = "create"
	actionAdd    = "add"
	actionRemove = "remove"
)

// change is one row of tag history.
type change struct {
	Seq       int64  `json:"seq"`
	IndexID   string `json:"index_id"`
	Action    string `json:"action"`
	Tags      string `json:"tags,omitempty"` // tags added or removed
	Result    string `json:"result"`         // the index's tags afterwards
	Author    string `json:"author,omitempty"`
	CreatedAt int64  `json:"-"`
	Time      string `json:"time"`
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func record(ctx context.Context, db *sql.DB, c change) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tag_history (index_id, action, tags, result, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.IndexID, c.Action, c.Tags, c.Result, c.Author, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("record tag history: %w", err)
	}
	return nil
}

// history returns the changes recorded for an index, oldest first.
func history(ctx context.Context, db *sql.DB, indexID string) ([]change, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT seq, index_id, action, tags, result, author, created_at
		FROM tag_history WHERE index_id = ? ORDER BY seq`, indexID)
	if err != nil {
		return nil, fmt.Errorf("read tag history: %w", err)
	}
	defer rows.Close()

	var out []change
	for rows.Next() {
		var c change
		if err := rows.Scan(&c.Seq, &c.IndexID, &c.Action, &c.Tags, &c.Result, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag history: %w", err)
		}
		c.Time = time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339)
		out = append(out, c)
	}
	return out, rows.Err()
}

// purge deletes history rows whose index is gone from the catalogue.
func purge(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `
		DELETE FROM tag_history
		WHERE index_id NOT IN (SELECT id FROM indices)`)
	if err != nil {
		return 0, fmt.Errorf("vacuum tag history: %w", err)
	}
	return res.RowsAffected()
}

// line renders a change for "tagidx tag log".
func (c change) line() string {
	when := time.Unix(c.CreatedAt, 0).Format("2006-01-02 15:04")
	var what string
	switch c.Action {
	case actionCreate:
		what = "created"
	case actionAdd:
		what = "+" + c.Tags
	default:
		what = "-" + c.Tags
	}
	by := ""
	if c.Author != "" {
		by = " by " + c.Author
	}
	return fmt.Sprintf("%s  %-12s  %q%s", when, what, c.Result, by)
}
