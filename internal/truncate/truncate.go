// Package truncate implements the middle-out truncator (spec §4.1): the
// smallest unit of the compression pipeline, responsible for fitting a
// single string into a character budget while preserving both boundary
// contexts and reporting how much was dropped.
package truncate

import "fmt"

const ellipsis = "..."

// Truncate fits content into maxChars runes, per spec §4.1.
//
// If content already fits, it is returned unchanged. In atomic mode (for
// pre-optimized content such as a file preview, where the tail carries no
// useful signal) only the head is kept, with a plain "..." appended. In
// non-atomic mode a gap marker reporting how much was removed is embedded
// in the middle, splitting the remaining budget evenly between head and
// tail (tail gets the odd rune). If the budget can't fit 40 chars plus the
// marker, the result falls back to head-only. If the budget can't even fit
// the marker, the marker itself is truncated to fit.
func Truncate(content string, maxChars int, atomic bool) string {
	runes := []rune(content)
	if len(runes) <= maxChars {
		return content
	}

	if atomic {
		return truncateAtomic(runes, maxChars)
	}

	removed := len(runes) - maxChars
	marker := gapMarker(removed)
	markerRunes := []rune(marker)

	if maxChars <= len(markerRunes) {
		return string(markerRunes[:max(0, maxChars)])
	}

	if maxChars >= 40+len(markerRunes) {
		remaining := maxChars - len(markerRunes)
		startLen := remaining / 2
		endLen := remaining - startLen
		return string(runes[:startLen]) + marker + string(runes[len(runes)-endLen:])
	}

	return string(runes[:maxChars-len(markerRunes)]) + marker
}

func truncateAtomic(runes []rune, maxChars int) string {
	if maxChars <= len(ellipsis) {
		if maxChars <= 0 {
			return ""
		}
		return ellipsis[:maxChars]
	}
	return string(runes[:maxChars-len(ellipsis)]) + ellipsis
}

// gapMarker builds the literal marker string reporting how many chars were
// dropped, per the three size tiers of spec §4.1.
func gapMarker(removed int) string {
	switch {
	case removed < 100:
		return ellipsis
	case removed < 1000:
		return fmt.Sprintf("...[+%d chars]...", removed)
	default:
		kb := float64(removed) / 1024
		return fmt.Sprintf("...[+%.1f KB]...", kb)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
