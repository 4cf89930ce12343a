// checkpoint.go implements WAL checkpoint operations for SQLite.
//
// Separated because checkpointing is a shutdown-time maintenance operation.
// The catalogue checkpoints on Close so that a .tagidx directory committed
// to git holds a single self-contained database file.
//
// Design: TRUNCATE mode fully flushes the WAL and removes the -wal/-shm files.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL. This removes the -wal and -shm files from the filesystem.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
