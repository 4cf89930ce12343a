// dim.go parses numeric index attributes from command arguments.

package validate

import (
	"fmt"
	"strconv"
)

// Dim parses an index dimension. Dimensions must be positive.
func Dim(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidDim, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidDim, n)
	}
	return n, nil
}

// Plev parses a prime level increment. Negative values are allowed here;
// the index rejects a resulting level below zero.
func Plev(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidPlev, s)
	}
	return n, nil
}
