// set.go implements Set, the sorted fixed-capacity tag container.

package tagset

import (
	"iter"
	"slices"
	"strings"
)

// Set is an ordered set of Text elements stored inline.
//
// Elements [0, Len()) are strictly ascending. Slots past Len() are always
// zero and DefaultLimits is stored as the zero form, so two sets whose
// Limits() agree and whose elements are equal compare == as Go values. The
// zero value is an empty set with DefaultLimits. Use Equal to compare
// elements across different limits.
type Set struct {
	tags      [MaxTags]Text
	n         uint8
	maxTags   uint8 // 0 means DefaultLimits
	maxTagLen uint8
}

// New returns an empty Set with DefaultLimits.
func New() Set { return DefaultLimits.New() }

// Limits returns the bounds of s.
func (s Set) Limits() Limits {
	if s.maxTags == 0 {
		return DefaultLimits
	}
	return Limits{MaxTags: int(s.maxTags), MaxTagLen: int(s.maxTagLen)}
}

// Len returns the number of tags.
func (s Set) Len() int { return int(s.n) }

// Cap returns the maximum number of tags.
func (s Set) Cap() int { return s.Limits().MaxTags }

// IsEmpty reports whether s has no tags.
func (s Set) IsEmpty() bool { return s.n == 0 }

// At returns the i-th tag in ascending order. ok is false when i is out of
// range.
func (s Set) At(i int) (t Text, ok bool) {
	if i < 0 || i >= int(s.n) {
		return Text{}, false
	}
	return s.tags[i], true
}

// All yields the tags in ascending order.
func (s Set) All() iter.Seq[Text] {
	return func(yield func(Text) bool) {
		for i := range int(s.n) {
			if !yield(s.tags[i]) {
				return
			}
		}
	}
}

// Tags returns the tags as strings in ascending order.
func (s Set) Tags() []string {
	out := make([]string, 0, s.n)
	for t := range s.All() {
		out = append(out, t.String())
	}
	return out
}

// Add inserts tag, keeping s sorted.
//
// Adding a tag already present succeeds and changes nothing. A tag longer
// than the set's MaxTagLen fails with an *InvalidTagError; adding to a full
// set fails with a *TooManyTagsError. On failure s is unchanged.
func (s *Set) Add(tag string) error {
	t, err := NewText(tag, s.Limits().MaxTagLen)
	if err != nil {
		return &InvalidTagError{Tag: tag, Err: err}
	}
	return s.insert(t)
}

func (s *Set) insert(t Text) error {
	i, found := s.search(t)
	if found {
		return nil
	}
	if limit := s.Cap(); int(s.n) >= limit {
		return &TooManyTagsError{Actual: int(s.n) + 1, Max: limit}
	}
	copy(s.tags[i+1:s.n+1], s.tags[i:s.n])
	s.tags[i] = t
	s.n++
	return nil
}

// Remove deletes tag and reports whether it was present. Input that could
// never be an element of s reports false.
func (s *Set) Remove(tag string) bool {
	t, err := NewText(tag, s.Limits().MaxTagLen)
	if err != nil {
		return false
	}
	i, found := s.search(t)
	if !found {
		return false
	}
	copy(s.tags[i:s.n-1], s.tags[i+1:s.n])
	s.n--
	s.tags[s.n] = Text{}
	return true
}

// Has reports whether tag is in s.
func (s Set) Has(tag string) bool {
	t, err := NewText(tag, s.Limits().MaxTagLen)
	if err != nil {
		return false
	}
	_, found := s.search(t)
	return found
}

// HasAll reports whether every tag of other is in s. It is true when other is
// empty.
func (s Set) HasAll(other Set) bool {
	for t := range other.All() {
		if _, found := s.search(t); !found {
			return false
		}
	}
	return true
}

// Common returns the tags present in both s and other, with the limits of s.
func (s Set) Common(other Set) Set {
	out := Set{maxTags: s.maxTags, maxTagLen: s.maxTagLen}
	i, j := 0, 0
	for i < int(s.n) && j < int(other.n) {
		switch c := s.tags[i].Compare(other.tags[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out.tags[out.n] = s.tags[i]
			out.n++
			i++
			j++
		}
	}
	return out
}

// Difference returns the tags of s that are not in other, with the limits
// of s.
func (s Set) Difference(other Set) Set {
	out := Set{maxTags: s.maxTags, maxTagLen: s.maxTagLen}
	for t := range s.All() {
		if _, found := other.search(t); !found {
			out.tags[out.n] = t
			out.n++
		}
	}
	return out
}

// Union returns s with every tag of other added. It fails with the same
// errors as Add if a tag of other is too long for s or the result would not
// fit; s itself is never modified.
func (s Set) Union(other Set) (Set, error) {
	out := s
	maxLen := s.Limits().MaxTagLen
	for t := range other.All() {
		if t.Len() > maxLen {
			return Set{}, &InvalidTagError{Tag: t.String(), Err: &TooLongError{Actual: t.Len(), Max: maxLen}}
		}
		if err := out.insert(t); err != nil {
			return Set{}, err
		}
	}
	return out, nil
}

// Equal reports whether s and other hold the same tags. Limits are not
// compared.
func (s Set) Equal(other Set) bool {
	if s.n != other.n {
		return false
	}
	for i := range int(s.n) {
		if !s.tags[i].Equal(other.tags[i]) {
			return false
		}
	}
	return true
}

// String returns the canonical form: tags in ascending order joined by
// commas.
func (s Set) String() string {
	var b strings.Builder
	for i := range int(s.n) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(s.tags[i].buf[:s.tags[i].size])
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (s Set) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is parsed with
// the current limits of s, and s is only replaced if parsing succeeds.
func (s *Set) UnmarshalText(b []byte) error {
	parsed, err := s.Limits().Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// search finds t by binary search over the live elements.
func (s *Set) search(t Text) (int, bool) {
	return slices.BinarySearchFunc(s.tags[:s.n], t, Text.Compare)
}
