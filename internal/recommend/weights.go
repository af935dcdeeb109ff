package recommend

import (
	"strings"

	"gatorguide-backend/internal/profiles"
)

// Scoring dimension names, in the fixed order used for normalization.
// The remainder of integer normalization always lands on the last one.
var weightDimensions = []string{
	"academics", "cost", "location", "prestige", "size", "setting", "aid", "debt", "aiFit",
}

// WeightSet maps each scoring dimension to an integer weight. The invariant,
// restored by normalize, is that the weights sum to exactly 100.
type WeightSet struct {
	Academics int `json:"academics"`
	Cost      int `json:"cost"`
	Location  int `json:"location"`
	Prestige  int `json:"prestige"`
	Size      int `json:"size"`
	Setting   int `json:"setting"`
	Aid       int `json:"aid"`
	Debt      int `json:"debt"`
	AIFit     int `json:"aiFit"`
}

// Sum returns the total of all dimension weights.
func (w WeightSet) Sum() int {
	total := 0
	for _, v := range w.values() {
		total += v
	}
	return total
}

func (w WeightSet) values() []int {
	return []int{w.Academics, w.Cost, w.Location, w.Prestige, w.Size, w.Setting, w.Aid, w.Debt, w.AIFit}
}

func weightSetFromValues(vals []int) WeightSet {
	return WeightSet{
		Academics: vals[0], Cost: vals[1], Location: vals[2], Prestige: vals[3],
		Size: vals[4], Setting: vals[5], Aid: vals[6], Debt: vals[7], AIFit: vals[8],
	}
}

// longFreeTextThreshold: a free-text answer longer than this signals real
// engagement with the questionnaire and nudges academics up.
const longFreeTextThreshold = 80

// BuildWeights derives the scoring-dimension weights from the profile, the
// normalized questionnaire, and the presence of a free-text query. The
// baseline reflects the transfer-student default persona (academics and
// cost dominate); each signal shifts it, and the result is normalized back
// to a 100-point budget. It never fails: missing inputs keep the baseline.
func BuildWeights(profile *profiles.Profile, q *Questionnaire, query string) WeightSet {
	w := WeightSet{
		Academics: 45,
		Cost:      25,
		Location:  15,
		Prestige:  5,
		Size:      5,
		Setting:   5,
	}

	if q != nil {
		switch q.CostOfAttendance {
		case CostLow:
			w.Cost += 20
			w.Aid += 10
			w.Debt += 5
			w.Academics -= 15
		case CostMedium:
			w.Cost += 5
		}
	}

	if len(strings.TrimSpace(query)) > 2 {
		w.AIFit = 20
		w.Academics -= 10
		w.Cost -= 10
	}

	if q != nil {
		switch q.InStateOutOfState {
		case GeoInState:
			w.Location += 20
		case GeoOutOfState:
			w.Location += 5
		}
	}

	if profile != nil && strings.TrimSpace(profile.Major) != "" {
		w.Academics += 15
	}

	if q != nil {
		switch q.RankingImportance {
		case ImportanceVery:
			w.Academics += 20
		case ImportanceSomewhat:
			w.Academics += 10
		}

		for _, text := range q.freeTextAnswers() {
			if len(text) > longFreeTextThreshold {
				w.Academics += 5
				break
			}
		}
	}

	return normalizeWeights(w)
}

// normalizeWeights floors negatives at zero and rescales to integers summing
// to exactly 100, assigning the rounding remainder to the last dimension.
// A non-positive total distributes the budget equally instead.
func normalizeWeights(w WeightSet) WeightSet {
	vals := w.values()
	total := 0
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
			v = 0
		}
		total += v
	}

	out := make([]int, len(vals))
	if total <= 0 {
		share := 100 / len(vals)
		used := 0
		for i := range out {
			out[i] = share
			used += share
		}
		out[len(out)-1] += 100 - used
		return weightSetFromValues(out)
	}

	used := 0
	for i, v := range vals {
		if i == len(vals)-1 {
			out[i] = 100 - used
			break
		}
		out[i] = v * 100 / total
		used += out[i]
	}
	return weightSetFromValues(out)
}
