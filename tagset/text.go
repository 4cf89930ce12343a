// text.go implements Text, the bounded element type of a Set.

package tagset

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxTextLen is the largest character bound any Text may use.
	MaxTextLen = 32
	// MaxTextBytes is the inline storage of a Text: four UTF-8 bytes per
	// character at MaxTextLen.
	MaxTextBytes = 4 * MaxTextLen
)

// Text is an immutable string of at most MaxTextLen characters stored inline.
// The zero value is the empty text.
type Text struct {
	buf   [MaxTextBytes]byte
	size  uint8 // bytes used in buf
	chars uint8 // characters in buf[:size]
}

// NewText copies s into a Text bounded to limit characters.
//
// It returns a *TooLongError if s has more than limit characters, and an error
// matching ErrInvalidUTF8 if s is not valid UTF-8. Input is never truncated.
// NewText panics if limit is outside [0, MaxTextLen].
func NewText(s string, limit int) (Text, error) {
	checkTextBound(limit)
	if !utf8.ValidString(s) {
		return Text{}, fmt.Errorf("%w: %q", ErrInvalidUTF8, s)
	}
	n := utf8.RuneCountInString(s)
	if n > limit {
		return Text{}, &TooLongError{Actual: n, Max: limit}
	}
	var t Text
	t.size = uint8(copy(t.buf[:], s))
	t.chars = uint8(n)
	return t, nil
}

// textFromBytes builds a Text from b, which must be valid UTF-8 holding
// chars characters and no more than MaxTextBytes bytes.
func textFromBytes(b []byte, chars int) Text {
	var t Text
	t.size = uint8(copy(t.buf[:], b))
	t.chars = uint8(chars)
	return t
}

func checkTextBound(limit int) {
	if limit < 0 || limit > MaxTextLen {
		panic(fmt.Sprintf("tagset: text bound %d outside [0, %d]", limit, MaxTextLen))
	}
}

// Len returns the number of characters.
func (t Text) Len() int { return int(t.chars) }

// IsEmpty reports whether t has no characters.
func (t Text) IsEmpty() bool { return t.chars == 0 }

// String returns the content.
func (t Text) String() string { return string(t.buf[:t.size]) }

// Equal reports whether t and o hold the same content.
func (t Text) Equal(o Text) bool { return t.Compare(o) == 0 }

// Compare orders texts by Unicode code point, shorter prefix first.
// Byte order of UTF-8 is code point order, so this is a byte comparison.
func (t Text) Compare(o Text) int {
	return bytes.Compare(t.buf[:t.size], o.buf[:o.size])
}

// MarshalText implements encoding.TextMarshaler.
func (t Text) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
