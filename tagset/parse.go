// parse.go implements reading a Set from comma-separated text.

package tagset

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads comma-separated tags into a Set with DefaultLimits.
func Parse(text string) (Set, error) {
	return DefaultLimits.Parse(text)
}

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and package-level variables.
func MustParse(text string) Set {
	s, err := Parse(text)
	if err != nil {
		panic("tagset: MustParse(" + text + "): " + err.Error())
	}
	return s
}

// Parse reads comma-separated tags into a Set with limits l.
//
// Every whitespace character in a segment is removed, including interior
// ones. Segments left empty are skipped. The remaining segments are added in
// order and the first failure aborts the parse; no partial set is returned.
func (l Limits) Parse(text string) (Set, error) {
	s := l.New()
	for seg := range strings.SplitSeq(text, ",") {
		t, ok, err := strip(seg, l.MaxTagLen)
		if err != nil {
			return Set{}, err
		}
		if !ok {
			continue
		}
		if err := s.insert(t); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

// strip removes whitespace from seg into a stack buffer and returns the
// resulting Text. ok is false when nothing but whitespace remains.
func strip(seg string, limit int) (t Text, ok bool, err error) {
	if !utf8.ValidString(seg) {
		return Text{}, false, &InvalidTagError{Tag: seg, Err: fmt.Errorf("%w: %q", ErrInvalidUTF8, seg)}
	}
	var buf [MaxTextBytes]byte
	size, chars := 0, 0
	for _, r := range seg {
		if unicode.IsSpace(r) {
			continue
		}
		chars++
		if chars <= limit {
			size += utf8.EncodeRune(buf[size:], r)
		}
	}
	if chars == 0 {
		return Text{}, false, nil
	}
	if chars > limit {
		tag := strings.Join(strings.FieldsFunc(seg, unicode.IsSpace), "")
		return Text{}, false, &InvalidTagError{Tag: tag, Err: &TooLongError{Actual: chars, Max: limit}}
	}
	return textFromBytes(buf[:size], chars), true, nil
}
