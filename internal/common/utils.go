package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var numberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseNumber parses provider values that arrive as JSON strings ("20", " 3.5 ").
func ParseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return v, nil
}

// FirstNumber extracts the first number embedded in s, e.g. "≤3" -> 3 or "4-5" -> 4.
func FirstNumber(field, s string) (float64, error) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("field %s: no number in %q", field, s)
	}
	return strconv.ParseFloat(m, 64)
}

// FormatNumber renders v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
