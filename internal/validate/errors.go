// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures don't carry
// additional context beyond the category. Detailed messages are provided by
// wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidID   = errors.New("invalid index id")
	ErrInvalidDim  = errors.New("invalid dimension")
	ErrInvalidPlev = errors.New("invalid prime level")
	ErrInvalidTag  = errors.New("invalid tag")
)
