// errors.go defines the failure values returned by Text and Set.
//
// Each structured error carries the numbers that caused it and reports its
// sentinel through Is, so callers can branch with errors.Is and still read
// the fields with errors.As.

package tagset

import (
	"errors"
	"fmt"
)

var (
	ErrTooLong       = errors.New("tag too long")
	ErrTooManyTags   = errors.New("too many tags")
	ErrInvalidTag    = errors.New("invalid tag")
	ErrInvalidUTF8   = errors.New("invalid utf-8")
	ErrInvalidLimits = errors.New("invalid limits")
)

// TooLongError reports text whose character count exceeds its bound.
type TooLongError struct {
	Actual int // characters in the rejected input
	Max    int // bound it was checked against
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s: %d characters (max %d)", ErrTooLong, e.Actual, e.Max)
}

// Is reports whether target is ErrTooLong.
func (e *TooLongError) Is(target error) bool { return target == ErrTooLong }

// TooManyTagsError reports an insertion into a full set. Actual is the length
// the set would have had.
type TooManyTagsError struct {
	Actual int
	Max    int
}

func (e *TooManyTagsError) Error() string {
	return fmt.Sprintf("%s: %d tags (max %d)", ErrTooManyTags, e.Actual, e.Max)
}

// Is reports whether target is ErrTooManyTags.
func (e *TooManyTagsError) Is(target error) bool { return target == ErrTooManyTags }

// InvalidTagError wraps the reason a single tag could not become an element.
// It separates "this tag doesn't fit" from "the set is full".
type InvalidTagError struct {
	Tag string
	Err error
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidTag, e.Tag, e.Err)
}

// Is reports whether target is ErrInvalidTag.
func (e *InvalidTagError) Is(target error) bool { return target == ErrInvalidTag }

// Unwrap returns the underlying cause, usually a *TooLongError.
func (e *InvalidTagError) Unwrap() error { return e.Err }
