package recommend

import (
	"math"
	"strings"

	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/profiles"
)

// Scaling caps for the inverse-linear cost and debt dimensions.
const (
	tuitionScaleCap = 60000.0
	debtScaleCap    = 50000.0
)

// Breakdown is the per-dimension score set for one candidate. Final is the
// weight-averaged aggregate; every field is an integer in [0,100].
type Breakdown struct {
	Academics int `json:"academics"`
	Cost      int `json:"cost"`
	Location  int `json:"location"`
	Prestige  int `json:"prestige"`
	Size      int `json:"size"`
	Setting   int `json:"setting"`
	Aid       int `json:"aid"`
	Debt      int `json:"debt"`
	AIFit     int `json:"aiFit"`
	Final     int `json:"final"`
}

// ScoreCandidate computes the full dimension breakdown for one candidate
// under the given weights. aiFit is the externally supplied 0-100 factor;
// nil means none was supplied, which scores neutral when the aiFit weight is
// nonzero rather than silently zeroing the dimension. Pure: identical inputs
// always yield an identical breakdown.
func ScoreCandidate(c colleges.Candidate, w WeightSet, profile *profiles.Profile, q *Questionnaire, aiFit *int) Breakdown {
	b := Breakdown{
		Academics: academicsScore(c, profile),
		Cost:      costScore(c.Tuition),
		Location:  locationScore(c, profile, q),
		Prestige:  prestigeScore(c.AdmissionRate),
		Size:      categoryScore(preference(q, func(q *Questionnaire) string { return q.ClassSize }), c.Size),
		Setting:   categoryScore(preference(q, func(q *Questionnaire) string { return q.CampusSetting }), c.Setting),
		Aid:       aidScore(c.PellRate),
		Debt:      debtScore(c.MedianDebt),
	}

	switch {
	case aiFit != nil:
		b.AIFit = clampScore(*aiFit)
	case w.AIFit > 0:
		b.AIFit = 50
	}

	weighted := float64(b.Academics*w.Academics+
		b.Cost*w.Cost+
		b.Location*w.Location+
		b.Prestige*w.Prestige+
		b.Size*w.Size+
		b.Setting*w.Setting+
		b.Aid*w.Aid+
		b.Debt*w.Debt+
		b.AIFit*w.AIFit) / 100.0
	b.Final = clampScore(roundToInt(weighted))
	return b
}

// academicsScore rewards major availability, GPA strength, completion rate,
// and the in-state public articulation proxy; it penalizes hard when the
// declared major is not offered at all. Admission rate is deliberately
// excluded here: selectivity is prestige's job, and counting it twice would
// double-weight it.
func academicsScore(c colleges.Candidate, profile *profiles.Profile) int {
	score := 50

	major := ""
	if profile != nil {
		major = strings.TrimSpace(profile.Major)
	}
	if major != "" {
		if programsContain(c.Programs, major) {
			score += 30
		} else {
			score -= 40
		}
	}

	if profile != nil {
		if gpa, ok := parseGPA(profile.GPA); ok {
			score += roundToInt(gpa / 4.0 * 20)
		}
		if c.Ownership == colleges.OwnershipPublic && StateMatches(c.State, profile.State) {
			score += 15
		}
	}

	if rate := normalizeRate(c.CompletionRate); rate != nil {
		score += roundToInt(*rate * 20)
	}

	return clampScore(score)
}

func costScore(tuition *float64) int {
	if tuition == nil {
		return 50
	}
	capped := math.Min(tuitionScaleCap, *tuition)
	return clampScore(100 - roundToInt(capped/tuitionScaleCap*100))
}

func aidScore(pellRate *float64) int {
	rate := normalizeRate(pellRate)
	if rate == nil {
		return 50
	}
	return clampScore(roundToInt(*rate * 100))
}

func debtScore(debt *float64) int {
	if debt == nil {
		return 50
	}
	capped := math.Min(debtScaleCap, *debt)
	return clampScore(100 - roundToInt(capped/debtScaleCap*100))
}

// locationScore rewards candidates in the user's state when the
// questionnaire asked for in-state results.
func locationScore(c colleges.Candidate, profile *profiles.Profile, q *Questionnaire) int {
	score := 50
	if q != nil && q.InStateOutOfState == GeoInState && profile != nil {
		if StateMatches(profile.State, c.State) {
			score += 25
		}
	}
	return clampScore(score)
}

// categoryScore is the exact-match rule shared by size and setting: a stated
// preference that matches scores full marks, anything else stays neutral.
func categoryScore(pref, category string) int {
	if pref != "" && pref != NoPreference && pref == category {
		return 100
	}
	return 50
}

// prestigeScore treats selectivity as prestige: lower admission rate, higher
// score. Unknown admission rate is neutral.
func prestigeScore(admissionRate *float64) int {
	rate := normalizeRate(admissionRate)
	if rate == nil {
		return 50
	}
	return clampScore(roundToInt((1 - *rate) * 100))
}

func preference(q *Questionnaire, pick func(*Questionnaire) string) string {
	if q == nil {
		return NoPreference
	}
	return pick(q)
}
