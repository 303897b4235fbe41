package repository

import (
	"time"
)

const stampLayout = time.RFC3339Nano

// parseStamp parses a stored timestamp, returning the zero time for empty
// or malformed values.
func parseStamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(stampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatStamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

// nowUTC is replaced in tests that need stable timestamps.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}
