package gemini

import (
	"strings"
	"time"
)

// IsTransient reports whether an error looks like a temporary service
// failure worth retrying. Classification scans the error text for marker
// substrings, case-insensitively. The provider does not expose stable
// structured error codes, so this stays a textual heuristic.
func IsTransient(err error, markers []string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range markers {
		if strings.Contains(msg, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// Backoff returns the wait duration before the next attempt.
// Attempt numbering starts at 1, giving 1s, 2s, 4s, ...
func Backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}
