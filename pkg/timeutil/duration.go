// Package timeutil parses the human-readable time windows the history
// listing is filtered by, like "1w", "3d", or "1w2d6h".
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrEmptyWindow = errors.New("empty window")

// units in descending order, shared by parsing and formatting.
var units = []struct {
	label string
	value time.Duration
}{
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

var segmentPattern = regexp.MustCompile(`^(\d+)([wdhms])`)

// ParseWindow parses a window like "2w" or "1w2d6h30m" into a duration,
// returning the canonical compact label alongside it. Segments must use
// the single-letter units w, d, h, m, s.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", ErrEmptyWindow
	}

	var total time.Duration
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if matches == nil {
			return 0, "", fmt.Errorf("invalid window segment %q", remaining)
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		for _, u := range units {
			if u.label == matches[2] {
				total += time.Duration(value) * u.value
				break
			}
		}
		remaining = remaining[len(matches[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window %q must be greater than zero", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration in the same compact unit notation,
// largest units first, zero-count units omitted.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}
