package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-7][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUID validation (any RFC 4122 version)
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Time-of-day validation, "HH:MM" 24-hour form.
func IsValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ParseTimeOfDay parses "HH:MM" into minutes since midnight.
func ParseTimeOfDay(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// TimeOfDayBefore reports whether a is strictly earlier in the day than b.
// Returns false when either value is malformed.
func TimeOfDayBefore(a, b string) bool {
	am, ok := ParseTimeOfDay(a)
	if !ok {
		return false
	}
	bm, ok := ParseTimeOfDay(b)
	if !ok {
		return false
	}
	return am < bm
}

// WindowsOverlap reports whether two same-day time windows intersect,
// using the strict startA < endB && startB < endA rule. Back-to-back
// windows (end of one equals start of the other) do not overlap.
func WindowsOverlap(startA, endA, startB, endB string) bool {
	sa, okA := ParseTimeOfDay(startA)
	ea, okB := ParseTimeOfDay(endA)
	sb, okC := ParseTimeOfDay(startB)
	eb, okD := ParseTimeOfDay(endB)
	if !okA || !okB || !okC || !okD {
		return false
	}
	return sa < eb && sb < ea
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
