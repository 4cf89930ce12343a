// write.go implements index creation and lifecycle operations for the
// Service layer. Each successful change fires an extension event.

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/index"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/validate"
)

// Create catalogues a new index with the given comma-separated tags.
func (s *Service) Create(ctx context.Context, dim int, tags, author string) (*service.Entry, error) {
	if err := validate.TagList(tags); err != nil {
		return nil, err
	}
	i, err := index.Parse(dim, tags, s.limits)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, i, author)
}

// Link catalogues a new index tagged only index.LinkTag.
func (s *Service) Link(ctx context.Context, dim int, author string) (*service.Entry, error) {
	i, err := index.NewLink(dim, s.limits)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, i, author)
}

// Sim catalogues a copy of an existing index under a fresh id.
func (s *Service) Sim(ctx context.Context, id, author string) (*service.Entry, error) {
	e, err := s.Resolve(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, e.Index.Sim(), author)
}

// Import catalogues i as given, keeping its id and prime level. The tags are
// checked against this catalogue's limits, which may differ from the
// limits i was built under.
func (s *Service) Import(ctx context.Context, i index.Index, author string) (*service.Entry, error) {
	if i.Dim < 1 {
		return nil, fmt.Errorf("%w: %d (must be at least 1)", index.ErrInvalidDim, i.Dim)
	}
	if i.Plev < 0 {
		return nil, fmt.Errorf("%w: %d", index.ErrInvalidPlev, i.Plev)
	}
	tags, err := setOf(i.Tags.Tags(), s.limits)
	if err != nil {
		return nil, fmt.Errorf("tags of %s: %w", i.ShortID(), err)
	}
	i.Tags = tags
	return s.put(ctx, i, author)
}

func (s *Service) put(ctx context.Context, i index.Index, author string) (*service.Entry, error) {
	if author == "" {
		author = DefaultAuthor
	}
	if err := s.store.Put(ctx, toRecord(i, author)); err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", i.ShortID(), err)
	}
	e, err := s.Get(ctx, i.ID.String())
	if err != nil {
		return nil, err
	}
	s.fireEvent(extension.IndexCreateEvent{
		ID:     i.ID.String(),
		Dim:    i.Dim,
		Tags:   i.Tags.String(),
		Author: author,
	})
	return e, nil
}

// Prime raises the prime level of an index by n.
func (s *Service) Prime(ctx context.Context, id string, n int) (*service.Entry, error) {
	e, err := s.Resolve(ctx, id, false)
	if err != nil {
		return nil, err
	}
	p, err := e.Index.Prime(n)
	if err != nil {
		return nil, err
	}
	r, err := s.store.SetPlev(ctx, p.ID.String(), p.Plev)
	if err != nil {
		return nil, err
	}
	s.fireEvent(extension.IndexPrimeEvent{ID: r.ID, Plev: r.Plev})
	return toEntry(r, s.limits)
}

// Delete soft-deletes an index.
func (s *Service) Delete(ctx context.Context, id string) (*service.Entry, error) {
	e, err := s.Resolve(ctx, id, false)
	if err != nil {
		return nil, err
	}
	full := e.Index.ID.String()
	if err := s.store.Delete(ctx, full); err != nil {
		return nil, err
	}
	e.Deleted = true
	e.DeletedAt = time.Now().Unix()
	s.fireEvent(extension.IndexDeleteEvent{ID: full})
	return e, nil
}

// Restore un-deletes a soft-deleted index.
func (s *Service) Restore(ctx context.Context, id string) (*service.Entry, error) {
	e, err := s.Resolve(ctx, id, true)
	if err != nil {
		return nil, err
	}
	full := e.Index.ID.String()
	if err := s.store.Restore(ctx, full); err != nil {
		return nil, err
	}
	e.Deleted = false
	e.DeletedAt = 0
	s.fireEvent(extension.IndexRestoreEvent{ID: full})
	return e, nil
}

// Vacuum permanently removes soft-deleted indices.
func (s *Service) Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error) {
	return s.store.Vacuum(ctx, olderThan)
}
