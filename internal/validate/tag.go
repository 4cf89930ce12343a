// tag.go implements raw tag text validation.
//
// Separated from the tagset package because these checks are about user
// input, not set invariants: a tag list with a null byte is rejected here
// before the catalogue ever parses it.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a single tag string.
//
// Validation rules:
//   - Empty (or all-whitespace) tags rejected
//   - Commas rejected (a comma always separates tags)
//   - Null bytes rejected
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, ',') {
		return fmt.Errorf("%w: %q contains a comma", ErrInvalidTag, t)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}

// TagList validates comma-separated tag text. Empty text is allowed and
// means no tags.
func TagList(s string) error {
	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("%w: null byte in tag list", ErrInvalidTag)
	}
	return nil
}
