package transcripts

import (
	"regexp"
	"strconv"
)

// gpaPattern matches "GPA: 3.72", "Cumulative GPA 3.5", "C-GPA = 3.8" and
// similar label/value shapes on the 0-4 scale.
var gpaPattern = regexp.MustCompile(`(?i)\bg\.?p\.?a\.?\s*[:=]?\s*([0-4](?:\.\d{1,3})?)\b`)

// DetectGPA scans extracted transcript text for a GPA on the 0-4 scale.
// When several labels match (term GPA, cumulative GPA), the last match
// wins since transcripts list the cumulative value at the bottom.
func DetectGPA(text string) (string, bool) {
	matches := gpaPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	raw := matches[len(matches)-1][1]
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 4 {
		return "", false
	}
	return raw, true
}
