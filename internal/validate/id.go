// id.go validates index ids and id prefixes typed by users.

package validate

import (
	"fmt"
	"strings"
)

// MinIDPrefix is the shortest prefix accepted for id lookups. Shorter
// prefixes match too many indices to be useful.
const MinIDPrefix = 4

// maxID is the length of a canonical UUID string.
const maxID = 36

// IDPrefix validates an index id or id prefix and returns it lowercased.
//
// Validation rules:
//   - At least MinIDPrefix characters, at most a full UUID
//   - Only hex digits and hyphens
func IDPrefix(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < MinIDPrefix {
		return "", fmt.Errorf("%w: %q is shorter than %d characters", ErrInvalidID, s, MinIDPrefix)
	}
	if len(s) > maxID {
		return "", fmt.Errorf("%w: %q is longer than a full id", ErrInvalidID, s)
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && r != '-' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidID, s, r)
		}
	}
	return s, nil
}
