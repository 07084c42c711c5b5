package suite

import (
	"testing"
	"time"
)

// GetDateTime returns a time.Time object from a string.
// Example: GetDateTime("2021-01-01")
func GetDateTime(t *testing.T, incomingDateTime string) time.Time {
	t.Helper()

	dateTime, err := time.Parse("2006-01-02", incomingDateTime)
	if err != nil {
		t.Fatalf("could not parse date time: %v", err)
	}
	return dateTime
}

// FloatPtr returns a pointer to the given float, for nullable model fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to the given int, for nullable model fields.
func IntPtr(v int) *int {
	return &v
}

// TimePtr returns a pointer to the given time, for nullable model fields.
func TimePtr(v time.Time) *time.Time {
	return &v
}
