package energy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound marks a referenced user or record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks caller input that cannot be interpreted, such as
	// an unparseable date.
	ErrInvalidInput = errors.New("invalid input")
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseDate accepts a calendar date, optionally carrying a time component,
// and returns it as YYYY-MM-DD. The time component is discarded.
func ParseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, value)
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
