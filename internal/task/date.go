package task

import (
	"strings"
	"time"

	schederrors "github.com/abatilo/smartsched/internal/errors"
)

const (
	// InputDateLayout is the dd/mm/yyyy layout accepted from the user.
	InputDateLayout = "02/01/2006"
	// DisplayDateLayout is the dd Mon yyyy layout used when rendering tasks.
	DisplayDateLayout = "02 Jan 2006"
)

// ParseDate parses a dd/mm/yyyy date. Day and month must be two digits.
func ParseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	d, err := time.Parse(InputDateLayout, value)
	if err != nil {
		return time.Time{}, schederrors.InvalidDateError{Value: value}
	}
	return d, nil
}

// FormatDate renders a date as dd Mon yyyy.
func FormatDate(d time.Time) string {
	return d.Format(DisplayDateLayout)
}

// DateOf strips the time of day from t, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now.
func Today(now time.Time) time.Time {
	return DateOf(now)
}

// ParsePriority reports whether the answer to "high priority? (y/n)" is yes.
// Anything other than y/Y counts as no.
func ParsePriority(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "y")
}
