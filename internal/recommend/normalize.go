package recommend

import (
	"math"
	"strconv"
	"strings"
)

// normalizeRate maps a nullable rate that may be expressed as a 0-1 fraction
// or a 0-100 percentage onto [0,1]. Values above 1 are treated as
// percentages; the result is clamped so 0.23 and 23 normalize identically.
func normalizeRate(rate *float64) *float64 {
	if rate == nil {
		return nil
	}
	v := *rate
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return &v
}

// parseGPA parses a GPA string on the 0-4 scale. Invalid or out-of-range
// values mean "no GPA provided", never an error.
func parseGPA(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 4 {
		return 0, false
	}
	return v, true
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

// containsFold reports a case-insensitive substring match.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// programsContain reports whether any program name contains the given
// substring, case-insensitively.
func programsContain(programs []string, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	for _, p := range programs {
		if containsFold(p, needle) {
			return true
		}
	}
	return false
}
