package date

import (
	"fmt"
	"time"
)

type candidate struct {
	style     *Style
	timestamp int64
}

// Detect returns the style matching supplied date text or nil.
// When several styles match, the pair of candidates with the smallest timestamp
// difference is selected and the timestamp with larger magnitude wins.
func Detect(value string, loc *time.Location) *Style {
	var candidates []candidate
	for _, style := range Styles {
		if style.DisplayOnly {
			continue
		}
		ts, err := style.Parse(value, loc)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{style: style, timestamp: ts.UnixMilli()})
	}
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0].style
	}
	timestamp := accurateTimestamp(candidates)
	var result *Style
	for _, item := range candidates { //last style producing the timestamp wins
		if item.timestamp == timestamp {
			result = item.style
		}
	}
	return result
}

func accurateTimestamp(candidates []candidate) int64 {
	var minDiff int64 = -1
	var first, second int64
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			diff := abs(candidates[i].timestamp - candidates[j].timestamp)
			if minDiff == -1 || diff <= minDiff {
				minDiff = diff
				first, second = candidates[i].timestamp, candidates[j].timestamp
			}
		}
	}
	if abs(first) > abs(second) {
		return first
	}
	return second
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// IsDate returns true if value matches any detectable style
func IsDate(value string) bool {
	return Detect(value, time.UTC) != nil
}

// Parse detects value style and parses it
func Parse(value string, loc *time.Location) (time.Time, error) {
	style := Detect(value, loc)
	if style == nil {
		return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
	}
	return style.Parse(value, loc)
}

// ParsePattern parses value with supplied pattern
func ParsePattern(value, pattern string, loc *time.Location) (time.Time, error) {
	return NewStyle(pattern).Parse(value, loc)
}

// Reformat converts date text from its detected style into supplied pattern
func Reformat(value, pattern string, loc *time.Location) (string, error) {
	ts, err := Parse(value, loc)
	if err != nil {
		return "", err
	}
	return NewStyle(pattern).Format(ts), nil
}
