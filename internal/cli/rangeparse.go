package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// lineRange is a parsed --range bound, supporting fractional addresses
// (e.g. "1.25:1.75") for wrapped content alongside plain integer ranges.
type lineRange struct {
	Start, End float64
	Set        bool
}

// parseRange parses a "START:END" range string. An empty rangeStr returns a
// zero-value, unset lineRange and no error, matching the original's
// optional --range flag.
func parseRange(rangeStr string) (lineRange, error) {
	if rangeStr == "" {
		return lineRange{}, nil
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return lineRange{}, fmt.Errorf("invalid range format: %s. Use START:END (e.g., 1.0:5.0 or 100:200)", rangeStr)
	}

	start, serr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	end, eerr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if serr != nil || eerr != nil {
		return lineRange{}, fmt.Errorf("invalid range format: %s. START and END must be numbers", rangeStr)
	}

	if start < 1.0 {
		return lineRange{}, fmt.Errorf("start line must be >= 1.0, got %v", start)
	}
	if end < start {
		return lineRange{}, fmt.Errorf("end line must be >= start line, got %v:%v", start, end)
	}

	return lineRange{Start: start, End: end, Set: true}, nil
}
