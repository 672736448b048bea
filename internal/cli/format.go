package cli

import (
	"fmt"
	"time"
)

// FormatDuration renders whole seconds as "45s" or "2m 5s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatTimestamp renders a play time in local time
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}
