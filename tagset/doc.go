// Package tagset provides a fixed-capacity, sorted, deduplicated set of
// short text labels used to annotate index objects.
//
// Storage is inline: a Set holds its elements in a fixed-size array and a
// Text holds its bytes in a fixed-size array, so neither allocates when it
// is created, copied or mutated. Bounds are chosen per value through
// [Limits], up to the package ceilings [MaxTags] and [MaxTextLen].
//
// # Invariants
//
// A Set is always strictly ascending (which implies no duplicates) and never
// holds more than its MaxTags elements. Every operation either completes or
// leaves the receiver exactly as it was:
//
//	s := tagset.MustParse("Site,n=1")
//	if err := s.Add("Link"); err != nil {
//	    // s is unchanged
//	}
//
// # Text format
//
// Parse reads comma-separated tags. Whitespace is removed everywhere in a
// segment (" bb bb " becomes "bbbb"), empty segments are skipped and there is
// no escape for a literal comma. The canonical form written by [Set.String]
// is the sorted elements joined by commas, and Parse(s.String()) == s.
//
// # Length
//
// Tag length is counted in Unicode characters, not bytes. Text reserves four
// bytes per character so any valid input within the bound fits.
//
// # Errors
//
// Failures are returned as *TooLongError, *TooManyTagsError or
// *InvalidTagError. Each matches its sentinel with errors.Is:
//
//	if errors.Is(err, tagset.ErrTooManyTags) {
//	    // set is full
//	}
//
// Lookups (Has, HasAll, Remove) never fail: input that cannot be a tag is
// simply not present.
package tagset
