// tags.go implements tag mutation for the Service layer.
//
// Separated from write.go because tag changes run through store.Retag: the
// stored tags are loaded into a tagset.Set under the catalogue's limits,
// mutated there, and written back in the same transaction. The set's own
// atomicity carries over: if any tag fails, nothing is written.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/validate"
	"github.com/jpl-au/tagidx/tagset"
)

// Tag adds every tag in the comma-separated list to an index. Tags the
// index already carries are accepted; if every tag was already present no
// event fires.
func (s *Service) Tag(ctx context.Context, id, tags, author string) (*service.Entry, error) {
	add, err := s.parseTags(tags)
	if err != nil {
		return nil, err
	}
	var added tagset.Set
	e, err := s.retag(ctx, id, func(set *tagset.Set) error {
		added = add.Difference(*set)
		u, err := set.Union(add)
		if err != nil {
			return err
		}
		*set = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !added.IsEmpty() {
		s.fireEvent(extension.TagEvent{ID: e.Index.ID.String(), Tags: added.Tags(), Result: e.Index.Tags.String(), Author: author, Added: true})
	}
	return e, nil
}

// Untag removes every tag in the comma-separated list from an index.
func (s *Service) Untag(ctx context.Context, id, tags, author string) (*service.Entry, error) {
	rm, err := s.parseTags(tags)
	if err != nil {
		return nil, err
	}
	e, err := s.retag(ctx, id, func(set *tagset.Set) error {
		if !set.HasAll(rm) {
			missing := rm.Difference(*set)
			return fmt.Errorf("%w: %s", service.ErrTagNotFound, missing.String())
		}
		*set = set.Difference(rm)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.fireEvent(extension.TagEvent{ID: e.Index.ID.String(), Tags: rm.Tags(), Result: e.Index.Tags.String(), Author: author, Added: false})
	return e, nil
}

// parseTags parses a non-empty tag list under the catalogue's limits.
func (s *Service) parseTags(tags string) (tagset.Set, error) {
	if err := validate.TagList(tags); err != nil {
		return tagset.Set{}, err
	}
	set, err := s.limits.Parse(tags)
	if err != nil {
		return tagset.Set{}, err
	}
	if set.IsEmpty() {
		return tagset.Set{}, fmt.Errorf("%w: no tags given", validate.ErrInvalidTag)
	}
	return set, nil
}

// retag resolves id and applies fn to its tag set inside a store transaction.
func (s *Service) retag(ctx context.Context, id string, fn func(*tagset.Set) error) (*service.Entry, error) {
	e, err := s.Resolve(ctx, id, false)
	if err != nil {
		return nil, err
	}
	r, err := s.store.Retag(ctx, e.Index.ID.String(), func(stored []string) ([]string, error) {
		set, err := setOf(stored, s.limits)
		if err != nil {
			return nil, err
		}
		if err := fn(&set); err != nil {
			return nil, err
		}
		return set.Tags(), nil
	})
	if err != nil {
		return nil, err
	}
	return toEntry(r, s.limits)
}
