package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseLines parses "a:b[,c:d]" into inclusive 1-based line ranges. A bare
// "n" selects one line. Empty input selects nothing.
func parseLines(list string) ([][2]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var ranges [][2]int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, ":")
		if !isRange {
			to = from
		}
		a, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("invalid line range %q: %w", part, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("invalid line range %q: %w", part, err)
		}
		if a < 1 || b < a {
			return nil, fmt.Errorf("invalid line range %q", part)
		}
		ranges = append(ranges, [2]int{a, b})
	}
	return ranges, nil
}
