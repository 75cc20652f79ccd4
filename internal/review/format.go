package review

import (
	"fmt"
	"strings"
)

// FormatDurationShort formats milliseconds into a compact human-readable
// string.
//
//	<1000ms  -> "0.Xs"
//	<60000ms -> "X.Xs"
//	<3600000 -> "XmYs"
//	else     -> "XhYm"
func FormatDurationShort(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("0.%ds", ms/100)
	case ms < 60000:
		return fmt.Sprintf("%d.%ds", ms/1000, (ms%1000)/100)
	case ms < 3600000:
		minutes := ms / 60000
		seconds := (ms % 60000) / 1000
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		hours := ms / 3600000
		minutes := (ms % 3600000) / 60000
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}

// TruncateMiddle shortens a string by replacing the middle with "..." if it
// exceeds maxLen. Preserves roughly equal portions from start and end.
func TruncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	available := maxLen - 3
	firstHalf := (available + 1) / 2
	lastHalf := available / 2
	return s[:firstHalf] + "..." + s[len(s)-lastHalf:]
}

// FlattenPreview renders the first limit bytes of content as a single
// line for the per-note panel.
func FlattenPreview(content string, limit int) string {
	preview := content
	truncated := false
	if len(preview) > limit {
		preview = preview[:limit]
		truncated = true
	}
	preview = strings.Join(strings.Fields(preview), " ")
	if truncated {
		preview += "..."
	}
	return preview
}
