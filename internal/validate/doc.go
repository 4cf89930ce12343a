// Package validate provides input validation for tagidx's boundary values.
//
// This package checks the raw strings that arrive from the CLI and MCP tools
// before they reach the catalogue: index id prefixes, dimensions, prime
// levels and tag text. Each validation function returns the cleaned value or
// a descriptive error.
//
// # Design Philosophy
//
// Validation is minimal. Tag length and count are the tagset package's job;
// here we only reject input that can never be meaningful (null bytes, empty
// ids, non-numeric dimensions).
//
// # Validation Functions
//
// IDPrefix validates and lowercases an index id or unique prefix.
// Dim and Plev parse positive dimensions and non-negative prime levels.
// Tag and TagList reject empty or null-byte tag input.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidID, ErrInvalidDim, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidID) {
//	    // handle invalid id
//	}
package validate
