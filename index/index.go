// Package index provides the tensor-network index object that tagidx
// catalogues. An Index is identified by a random id and a prime level, has a
// dimension, and owns exactly one tagset.Set.
//
// Index values are copied freely; copies share nothing. Two copies with the
// same ID and prime level are the same index (see [Index.Same]).
package index

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jpl-au/tagidx/tagset"
)

// LinkTag marks an index created to connect two tensors, such as the bond
// produced by a QR or SVD factorisation.
const LinkTag = "Link"

var (
	ErrInvalidDim  = errors.New("invalid dimension")
	ErrInvalidPlev = errors.New("invalid prime level")
)

// Index is a labelled tensor dimension.
type Index struct {
	ID   uuid.UUID
	Dim  int
	Plev int
	Tags tagset.Set
}

// New returns an index of dimension dim with a fresh id and the given tags.
func New(dim int, tags tagset.Set) (Index, error) {
	if dim < 1 {
		return Index{}, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidDim, dim)
	}
	return Index{ID: uuid.New(), Dim: dim, Tags: tags}, nil
}

// Parse is New with tags read from comma-separated text using limits.
func Parse(dim int, tags string, limits tagset.Limits) (Index, error) {
	ts, err := limits.Parse(tags)
	if err != nil {
		return Index{}, fmt.Errorf("parse tags %q: %w", tags, err)
	}
	return New(dim, ts)
}

// NewLink returns a fresh index of dimension dim tagged only with LinkTag.
func NewLink(dim int, limits tagset.Limits) (Index, error) {
	if err := limits.Validate(); err != nil {
		return Index{}, err
	}
	tags := limits.New()
	if err := tags.Add(LinkTag); err != nil {
		return Index{}, fmt.Errorf("add %s tag: %w", LinkTag, err)
	}
	return New(dim, tags)
}

// Sim returns an index like i with a new id, so it is not Same as i.
func (i Index) Sim() Index {
	i.ID = uuid.New()
	return i
}

// Prime returns i with its prime level raised by n. The result must lie in
// [0, math.MaxInt].
func (i Index) Prime(n int) (Index, error) {
	if n > 0 && i.Plev > math.MaxInt-n {
		return Index{}, fmt.Errorf("%w: %d+%d overflows", ErrInvalidPlev, i.Plev, n)
	}
	if i.Plev+n < 0 {
		return Index{}, fmt.Errorf("%w: %d", ErrInvalidPlev, i.Plev+n)
	}
	i.Plev += n
	return i, nil
}

// SetPrime returns i with prime level plev.
func (i Index) SetPrime(plev int) (Index, error) {
	if plev < 0 {
		return Index{}, fmt.Errorf("%w: %d", ErrInvalidPlev, plev)
	}
	i.Plev = plev
	return i, nil
}

// NoPrime returns i with prime level zero.
func (i Index) NoPrime() Index {
	i.Plev = 0
	return i
}

// Same reports whether i and o are the same index: equal id and prime level.
// Dimension and tags are carried along with the id and are not compared.
func (i Index) Same(o Index) bool {
	return i.ID == o.ID && i.Plev == o.Plev
}

// HasTags reports whether i carries every tag in the comma-separated list.
// Text that cannot be parsed matches nothing.
func (i Index) HasTags(tags string) bool {
	want, err := tagset.Limits{MaxTags: tagset.MaxTags, MaxTagLen: tagset.MaxTextLen}.Parse(tags)
	if err != nil {
		return false
	}
	return i.Tags.HasAll(want)
}

// ShortID returns the first eight hex digits of the id.
func (i Index) ShortID() string {
	return i.ID.String()[:8]
}

// String renders i as (dim=2|id=1a2b3c4d|"Link,Site")''.
func (i Index) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(dim=%d|id=%s", i.Dim, i.ShortID())
	if !i.Tags.IsEmpty() {
		fmt.Fprintf(&b, "|%q", i.Tags.String())
	}
	b.WriteByte(')')
	b.WriteString(strings.Repeat("'", i.Plev))
	return b.String()
}

// CommonInds returns the indices of a that are Same as some index of b, in
// the order they appear in a.
func CommonInds(a, b []Index) []Index {
	var out []Index
	for _, x := range a {
		for _, y := range b {
			if x.Same(y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
