// convert.go turns stored records into index values and back.
//
// Stored tags are re-parsed under the catalogue's limits on every load, so
// an index read from the database satisfies the same invariants as one
// built in memory.

package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jpl-au/tagidx/index"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

// toEntry converts a record using limits. A record whose tags no longer fit
// the limits is reported rather than truncated.
func toEntry(r *store.Record, limits tagset.Limits) (*service.Entry, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("stored index id %q: %w", r.ID, err)
	}
	tags, err := setOf(r.Tags, limits)
	if err != nil {
		return nil, fmt.Errorf("stored tags of %s: %w", r.ID, err)
	}
	e := &service.Entry{
		Index:     index.Index{ID: id, Dim: r.Dim, Plev: r.Plev, Tags: tags},
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.DeletedAt != nil {
		e.Deleted = true
		e.DeletedAt = *r.DeletedAt
	}
	return e, nil
}

func toEntries(recs []store.Record, limits tagset.Limits) ([]service.Entry, error) {
	out := make([]service.Entry, 0, len(recs))
	for i := range recs {
		e, err := toEntry(&recs[i], limits)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// setOf builds a set from stored elements.
func setOf(tags []string, limits tagset.Limits) (tagset.Set, error) {
	s := limits.New()
	for _, t := range tags {
		if err := s.Add(t); err != nil {
			return tagset.Set{}, err
		}
	}
	return s, nil
}

// toRecord converts an index to a record for insertion.
func toRecord(i index.Index, author string) store.Record {
	return store.Record{
		ID:     i.ID.String(),
		Dim:    i.Dim,
		Plev:   i.Plev,
		Tags:   i.Tags.Tags(),
		Author: author,
	}
}
