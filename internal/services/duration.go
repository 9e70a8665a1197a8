package services

import (
	"fmt"
	"strings"
)

// InProgressMarker is reported in place of a duration for open time logs.
const InProgressMarker = "In Progress"

// FormatDuration renders whole seconds as a compact human-readable string:
// 330 -> "5m 30s", 3930 -> "1h 5m 30s", 3600 -> "1h 0s". Hours and minutes
// are omitted when zero; seconds are always shown.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if hrs > 0 {
		fmt.Fprintf(&b, "%dh ", hrs)
	}
	if mins > 0 {
		fmt.Fprintf(&b, "%dm ", mins)
	}
	fmt.Fprintf(&b, "%ds", secs)
	return b.String()
}
