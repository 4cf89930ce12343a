// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll     = "all"     // Include deleted indices
	FlagCount   = "count"   // Output count only
	FlagDeleted = "deleted" // Show only deleted indices
	FlagDryRun  = "dry-run" // Preview without making changes
	FlagLocal   = "local"   // Use local scope (gitignored)
	FlagLong    = "long"    // Long format output
	FlagRaw     = "raw"     // Output without colour
	FlagReverse = "reverse" // Reverse sort order
	FlagShare   = "share"   // Mark as shared (committed)
	FlagTree    = "tree"    // Group output by tag

	// String flags

	FlagOlderThan = "older-than" // Duration threshold
	FlagSort      = "sort"       // Sort field
	FlagTag       = "tag"        // Tag filter

	// Integer flags

	FlagDim       = "dim"         // Index dimension
	FlagMaxTags   = "max-tags"    // Tag count bound
	FlagMaxTagLen = "max-tag-len" // Tag length bound
	FlagPlev      = "plev"        // Absolute prime level
)
