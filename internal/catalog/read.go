// read.go implements catalogue lookups for the Service layer.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/internal/validate"
	"github.com/jpl-au/tagidx/tagset"
)

// fullID is the length of a canonical UUID string.
const fullID = 36

// Get returns an active index by its full id.
func (s *Service) Get(ctx context.Context, id string) (*service.Entry, error) {
	r, err := s.store.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return toEntry(r, s.limits)
}

// Resolve returns an index by full id or unique prefix.
func (s *Service) Resolve(ctx context.Context, id string, includeDeleted bool) (*service.Entry, error) {
	id, err := validate.IDPrefix(id)
	if err != nil {
		return nil, err
	}

	var r *store.Record
	if len(id) == fullID {
		r, err = s.store.Get(ctx, id, includeDeleted)
	} else {
		r, err = s.store.ByPrefix(ctx, id, includeDeleted)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", id, err)
	}
	return toEntry(r, s.limits)
}

// List returns indices in creation order. A tag filter is parsed with the
// catalogue's limits, so a filter the catalogue could never satisfy is an
// error rather than an empty result.
func (s *Service) List(ctx context.Context, opts service.ListOptions) ([]service.Entry, error) {
	filter, err := s.limits.Parse(opts.Tags)
	if err != nil {
		return nil, fmt.Errorf("tag filter %q: %w", opts.Tags, err)
	}
	recs, err := s.store.List(ctx, store.ListOptions{
		Tags:           filter.Tags(),
		IncludeDeleted: opts.IncludeDeleted,
		DeletedOnly:    opts.DeletedOnly,
	})
	if err != nil {
		return nil, err
	}
	return toEntries(recs, s.limits)
}

// Find returns active indices carrying every tag in tags.
func (s *Service) Find(ctx context.Context, tags string) ([]service.Entry, error) {
	return s.List(ctx, service.ListOptions{Tags: tags})
}

// Common returns the tags shared by two indices.
func (s *Service) Common(ctx context.Context, a, b string) (tagset.Set, error) {
	x, err := s.Resolve(ctx, a, false)
	if err != nil {
		return tagset.Set{}, err
	}
	y, err := s.Resolve(ctx, b, false)
	if err != nil {
		return tagset.Set{}, err
	}
	return x.Index.Tags.Common(y.Index.Tags), nil
}

// Tags returns every tag in use with its usage count.
func (s *Service) Tags(ctx context.Context) ([]store.TagCount, error) {
	return s.store.AllTags(ctx)
}

// Stats returns aggregate catalogue statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}
