package batch

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash fingerprints extracted text as 16 hex digits of its xxhash.
func ComputeHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// TruncateURL fits u into max characters for progress lines. Long URLs keep
// their tail, where the page-specific part is, behind a "..." marker.
func TruncateURL(u string, max int) string {
	switch {
	case max <= 0:
		return ""
	case len(u) <= max:
		return u
	case max < 4:
		return u[:max]
	}
	return "..." + u[len(u)-(max-3):]
}

// FormatBytes renders a text size for progress lines, e.g. "512 B" or "1.5 KB".
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return strconv.Itoa(n) + " B"
	}
	size, suffix := float64(n)/unit, "KB"
	if n >= unit*unit {
		size, suffix = float64(n)/(unit*unit), "MB"
	}
	return fmt.Sprintf("%.1f %s", size, suffix)
}
