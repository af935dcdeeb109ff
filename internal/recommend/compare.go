package recommend

import (
	"context"
	"errors"
	"fmt"

	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/profiles"
)

const maxCompareIDs = 5

// ErrTooManyColleges is returned when a compare request exceeds the limit.
var ErrTooManyColleges = fmt.Errorf("at most %d colleges can be compared", maxCompareIDs)

// CompareEntry is one college in a side-by-side comparison: the full
// candidate record, its dimension breakdown under the caller's weights,
// and an annual cost estimate.
type CompareEntry struct {
	College   College              `json:"college"`
	Breakdown Breakdown            `json:"breakdown"`
	Cost      colleges.CostEstimate `json:"cost"`
}

// Comparison is the result of a compare request, including the weight set
// the breakdowns were scored under.
type Comparison struct {
	Weights WeightSet      `json:"weights"`
	Entries []CompareEntry `json:"entries"`
}

// Compare scores each requested college under the caller's derived weights
// so differences in the breakdown are attributable to the colleges, not
// the weighting. Unknown ids are skipped rather than failing the whole
// comparison.
func (e *Engine) Compare(ctx context.Context, profile *profiles.Profile, ids []string, answers map[string]string) (Comparison, error) {
	if len(ids) > maxCompareIDs {
		return Comparison{}, ErrTooManyColleges
	}

	q := NormalizeAnswers(answers)
	weights := BuildWeights(profile, &q, "")
	housing := q.Housing
	if housing == NoPreference {
		housing = ""
	}

	cmp := Comparison{Weights: weights, Entries: make([]CompareEntry, 0, len(ids))}
	for _, id := range ids {
		c, err := e.provider.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, colleges.ErrNotFound) {
				continue
			}
			return Comparison{}, err
		}
		cmp.Entries = append(cmp.Entries, CompareEntry{
			College:   collegeView(c),
			Breakdown: ScoreCandidate(c, weights, profile, &q, nil),
			Cost:      colleges.EstimateCost(c, housing),
		})
	}
	return cmp, nil
}
