package recommend

import (
	"fmt"
	"sort"
	"strings"
)

type namedFactor struct {
	label string
	score int
}

// buildExplanation picks the two strongest named sub-factors behind a
// result and formats them for display, disclosing the fallback state when
// one was used.
func buildExplanation(f Factors, scoredQuery, stateFallback bool, state string) string {
	named := []namedFactor{
		{"GPA fit", f.GPAFit},
		{"prestige", f.Prestige},
		{"major match", f.MajorFit},
		{"preference fit", f.PreferenceFit},
		{"AI fit", f.AIFit},
	}
	if scoredQuery {
		named = append(named, namedFactor{"query match", f.QueryMatch})
	}
	sort.SliceStable(named, func(i, j int) bool { return named[i].score > named[j].score })

	var b strings.Builder
	fmt.Fprintf(&b, "Top factors: %s (%d), %s (%d)",
		named[0].label, named[0].score, named[1].label, named[1].score)
	if stateFallback && state != "" {
		fmt.Fprintf(&b, ". Showing schools for %s since no state was set on your profile.", state)
	}
	return b.String()
}
