// Package duration parses the retention periods accepted by
// "tagidx vacuum --older-than".
//
// Periods are written as a count and a unit: "36h", "7d", "4w", "3m" or
// "1y". A month is 30 days and a year is 365 days.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var (
	pattern = regexp.MustCompile(`^(\d+)([hdwmy])$`)

	units = map[string]time.Duration{
		"h": time.Hour,
		"d": day,
		"w": 7 * day,
		"m": 30 * day,
		"y": 365 * day,
	}
)

// Parse parses a retention period such as "7d".
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format: %q (use e.g. 36h, 7d, 4w, 3m or 1y)", s)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	unit := units[m[2]]
	if n > int(maxDuration/unit) {
		return 0, fmt.Errorf("duration %q is too long", s)
	}
	return time.Duration(n) * unit, nil
}

const maxDuration = time.Duration(1<<63 - 1)
