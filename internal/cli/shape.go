package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseShape parses a "WIDTH:HEIGHT" string (e.g. "120:100") into chars-per-
// line and number-of-lines targets.
func parseShape(shapeStr string) (width, height int, err error) {
	parts := strings.Split(shapeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid shape format: %s. Use WIDTH:HEIGHT (e.g., 120:100)", shapeStr)
	}

	width, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if werr != nil || herr != nil {
		return 0, 0, fmt.Errorf("invalid shape format: %s. Both WIDTH and HEIGHT must be integers", shapeStr)
	}

	if width < 1 {
		return 0, 0, fmt.Errorf("width must be >= 1, got %d", width)
	}
	if height < 1 {
		return 0, 0, fmt.Errorf("height must be >= 1, got %d", height)
	}

	return width, height, nil
}
