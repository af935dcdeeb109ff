package recommend

import (
	"strings"

	"gatorguide-backend/internal/colleges"
)

// minQueryLength is the shortest query the engine actively scores or
// searches with. Anything shorter is treated as "no query".
const minQueryLength = 2

// QueryMatchScore rates how relevant a candidate is to a free-text query.
// Whole-query substring hits beat token coverage; queries under two
// characters are not actively scored and return neutral 50.
func QueryMatchScore(c colleges.Candidate, query string) int {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return 50
	}

	if containsFold(c.Name, query) {
		return 100
	}
	for _, p := range c.Programs {
		if containsFold(p, query) {
			return 90
		}
	}

	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return 50
	}
	matched := 0
	for _, tok := range tokens {
		if containsFold(c.Name, tok) || programsContain(c.Programs, tok) {
			matched++
		}
	}

	coverage := float64(matched) / float64(len(tokens))
	switch {
	case coverage >= 1:
		return 85
	case coverage >= 0.75:
		return 75
	case coverage >= 0.5:
		return 65
	case coverage > 0:
		return 55
	default:
		return 20
	}
}
