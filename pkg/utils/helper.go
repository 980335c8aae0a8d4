package utils

import (
	"fmt"
	"strconv"
)

// ParseID converts a path segment to a numeric entity ID.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", value, err)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}
