package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// wrapContent wraps lines longer than wrapWidth into segments, optionally
// prefixing each segment with a fractional line address ("12.00: ...",
// "12.50: ...") so --range can later select a sub-line slice. Lines that
// already fit are passed through with a plain integer prefix instead.
func wrapContent(content string, wrapWidth int, addLineNums bool) string {
	lines := strings.Split(content, "\n")
	var out []string

	for i, line := range lines {
		lineNum := i + 1
		lineLen := len([]rune(line))

		if lineLen <= wrapWidth {
			if addLineNums {
				out = append(out, fmt.Sprintf("%d: %s", lineNum, line))
			} else {
				out = append(out, line)
			}
			continue
		}

		runes := []rune(line)
		numSegments := (lineLen + wrapWidth - 1) / wrapWidth
		for seg := 0; seg < numSegments; seg++ {
			start := seg * wrapWidth
			end := start + wrapWidth
			if end > lineLen {
				end = lineLen
			}
			segment := string(runes[start:end])
			percentage := int((float64(start) / float64(lineLen)) * 100)

			if addLineNums {
				out = append(out, fmt.Sprintf("%d.%02d: %s", lineNum, percentage, segment))
			} else {
				out = append(out, segment)
			}
		}
	}

	return strings.Join(out, "\n")
}

// addLineNumbers prefixes every line with a plain sequential "N: " address.
func addLineNumbers(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%d: %s", i+1, line)
	}
	return strings.Join(out, "\n")
}

var addressPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)?): `)

// extractFractionalRange keeps only lines whose leading "N.NN: " (or plain
// "N: ") address falls within [start, end]. A line with no address prefix
// is kept only when the range covers the very start of the content
// (start <= 1.0), matching the original's conservative keep-if-unsure rule.
func extractFractionalRange(content string, start, end float64) string {
	lines := strings.Split(content, "\n")
	var out []string

	for _, line := range lines {
		m := addressPrefix.FindStringSubmatch(line)
		if m != nil {
			addr, err := strconv.ParseFloat(m[1], 64)
			if err == nil && addr >= start && addr <= end {
				out = append(out, line)
			}
			continue
		}
		if start <= 1.0 {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// extractIntegerRange keeps lines startLine..endLine (1-indexed, inclusive),
// used when content carries no address prefixes to parse fractionally.
func extractIntegerRange(content string, startLine, endLine int) (string, error) {
	lines := strings.Split(content, "\n")
	if startLine < 1 || startLine > len(lines) {
		return "", fmt.Errorf("start line %d out of range", startLine)
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	return strings.Join(lines[startLine-1:endLine], "\n"), nil
}
