// limits.go defines the per-set bounds on tag count and tag length.

package tagset

import "fmt"

// MaxTags is the largest element bound any Set may use.
const MaxTags = 8

// Limits bounds a Set: at most MaxTags elements, each at most MaxTagLen
// characters.
type Limits struct {
	MaxTags   int `yaml:"max_tags" json:"max_tags"`
	MaxTagLen int `yaml:"max_tag_len" json:"max_tag_len"`
}

// DefaultLimits matches ITensors.jl's TagSet: four tags of up to sixteen
// characters. The zero Set uses these.
var DefaultLimits = Limits{MaxTags: 4, MaxTagLen: 16}

// Validate checks both bounds against the package ceilings.
func (l Limits) Validate() error {
	if l.MaxTags < 1 || l.MaxTags > MaxTags {
		return fmt.Errorf("%w: max tags must be between 1 and %d, got %d", ErrInvalidLimits, MaxTags, l.MaxTags)
	}
	if l.MaxTagLen < 1 || l.MaxTagLen > MaxTextLen {
		return fmt.Errorf("%w: max tag length must be between 1 and %d, got %d", ErrInvalidLimits, MaxTextLen, l.MaxTagLen)
	}
	return nil
}

// New returns an empty Set with these limits. It panics if l is invalid;
// check untrusted limits with Validate first. DefaultLimits yields the zero
// Set.
func (l Limits) New() Set {
	if err := l.Validate(); err != nil {
		panic("tagset: " + err.Error())
	}
	if l == DefaultLimits {
		return Set{}
	}
	return Set{maxTags: uint8(l.MaxTags), maxTagLen: uint8(l.MaxTagLen)}
}
