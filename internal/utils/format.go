package utils

import (
	"fmt"
	"math"
)

// FormatCount renders a counter the way the video cards display it:
// below 1000 the raw number, then "1.2K", then "1.0M" from a million up.
// The decimal truncates, so a count stays in its bracket right up to the
// boundary: 999999 is "999.9K", never "1000.0K".
func FormatCount(count int64) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", truncTenth(float64(count)/1_000_000))
	case count >= 1_000:
		return fmt.Sprintf("%.1fK", truncTenth(float64(count)/1_000))
	default:
		return fmt.Sprintf("%d", count)
	}
}

// FormatDuration renders seconds as m:ss, or h:mm:ss from an hour up.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func truncTenth(v float64) float64 {
	return math.Floor(v*10) / 10
}
