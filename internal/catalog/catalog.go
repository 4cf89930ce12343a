// Package catalog provides the catalogue of tensor-network indices backed by
// a Store implementation. It exposes a Service that wraps a store.Store,
// turns stored records into index.Index values under the catalogue's tag
// limits, and notifies extensions of every change.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

// DefaultAuthor is recorded when no author is configured or supplied.
const DefaultAuthor = "unknown"

// Service implements service.Service over a SQLite catalogue.
type Service struct {
	store  *store.SQLiteStore
	dbPath string
	limits tagset.Limits
	extCtx extension.Context // for firing events to extensions
}

var _ service.Service = (*Service)(nil)

// New creates a new Service, discovering the DB by walking up the directory tree.
// The db parameter specifies which database to use (empty for default).
// Returns repo.ErrNotInitialised if no matching database is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open creates a Service for the catalogue at dbPath.
//
// The catalogue's tag limits come from the database itself. A database
// without recorded limits adopts the configured ones and records them.
func Open(dbPath string) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	limits, err := loadLimits(context.Background(), s)
	if err != nil {
		s.Close()
		return nil, err
	}

	return &Service{store: s, dbPath: dbPath, limits: limits}, nil
}

func loadLimits(ctx context.Context, s *store.SQLiteStore) (tagset.Limits, error) {
	maxTags, err1 := s.Meta(ctx, store.MetaMaxTags)
	maxLen, err2 := s.Meta(ctx, store.MetaMaxTagLen)
	if errors.Is(err1, store.ErrNotFound) || errors.Is(err2, store.ErrNotFound) {
		cfg, err := config.Load()
		if err != nil {
			return tagset.Limits{}, err
		}
		l := cfg.TagLimits()
		if err := s.SetMeta(ctx, store.MetaMaxTags, strconv.Itoa(l.MaxTags)); err != nil {
			return tagset.Limits{}, err
		}
		if err := s.SetMeta(ctx, store.MetaMaxTagLen, strconv.Itoa(l.MaxTagLen)); err != nil {
			return tagset.Limits{}, err
		}
		return l, nil
	}
	if err := errors.Join(err1, err2); err != nil {
		return tagset.Limits{}, err
	}

	var l tagset.Limits
	var err error
	if l.MaxTags, err = strconv.Atoi(maxTags); err != nil {
		return tagset.Limits{}, fmt.Errorf("%w: stored max_tags %q", tagset.ErrInvalidLimits, maxTags)
	}
	if l.MaxTagLen, err = strconv.Atoi(maxLen); err != nil {
		return tagset.Limits{}, fmt.Errorf("%w: stored max_tag_len %q", tagset.ErrInvalidLimits, maxLen)
	}
	if err := l.Validate(); err != nil {
		return tagset.Limits{}, fmt.Errorf("catalogue %w", err)
	}
	return l, nil
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// Limits returns the tag bounds this catalogue enforces.
func (s *Service) Limits() tagset.Limits {
	return s.limits
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/root.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// fireEvent notifies all registered extension event handlers.
//
// Handler errors are logged, not returned: the operation has already
// happened and events cannot undo it.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.EventHandler); ok {
			if err := h.HandleEvent(s.extCtx, e); err != nil {
				log.Event("event:error", "error").
					Index(e.EventIndex()).
					Detail("ext", ext.Name()).
					Detail("event", string(e.EventType())).
					Write(err)
			}
		}
	}
}
