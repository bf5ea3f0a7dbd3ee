// Package limiter implements the output limiter (spec §4.8): a hard
// character ceiling applied to the final rendered output, with a bookend
// (head+tail) preview and an advisory block explaining what happened and
// how to get more.
package limiter

import "fmt"

// Apply enforces limit chars on output. If output already fits, it is
// returned unchanged. Otherwise a bookend preview of at most limit chars
// (head + gap marker + tail, or head-only if limit is too small for
// bookends) is followed by an advisory block with actionable next steps;
// the advisory block is appended after the preview, so the returned string
// is longer than limit.
func Apply(output string, limit int) string {
	runes := []rune(output)
	if len(runes) <= limit {
		return output
	}

	totalChars := len(runes)
	totalLines := countLines(output)
	excessKB := float64(totalChars-limit) / 1024

	marker := fmt.Sprintf("\n\n[...%.1f KB OMITTED...]\n\n", excessKB)
	markerRunes := []rune(marker)

	var preview string
	if limit >= 100+len(markerRunes) {
		remaining := limit - len(markerRunes)
		headChars := remaining / 2
		tailChars := remaining - headChars
		preview = string(runes[:headChars]) + marker + string(runes[len(runes)-tailChars:])
	} else {
		preview = string(runes[:limit])
	}

	message := fmt.Sprintf(
		"\n[OUTPUT TRUNCATED: %s chars (%d lines) exceeds --limit %s by %.1f KB]\n"+
			"Reduce output: --shape WIDTH:HEIGHT (e.g., 120:50) or --range START:END (e.g., 1:100)\n"+
			"Raise limit:   --limit %d or save to file: nub ... > output.txt\n",
		grouped(totalChars), totalLines, grouped(limit), excessKB, totalChars,
	)

	return preview + message
}

func countLines(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// grouped formats n with thousands separators, matching Python's f"{n:,}".
func grouped(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
