package recommend

import "strings"

// NoPreference is the sentinel every questionnaire field canonicalizes to
// when the submitted value is absent or unrecognized.
const NoPreference = "no_preference"

// Cost-of-attendance brackets.
const (
	CostLow    = "under_20k"
	CostMedium = "20k_to_40k"
	CostHigh   = "over_40k"
)

// Geography preferences.
const (
	GeoInState    = "in_state"
	GeoOutOfState = "out_of_state"
)

// Class-size preferences share the college size categories.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Campus-setting preferences share the college setting categories.
const (
	SettingUrban    = "urban"
	SettingSuburban = "suburban"
	SettingRural    = "rural"
)

// Ranking-importance levels.
const (
	ImportanceVery     = "very_important"
	ImportanceSomewhat = "somewhat_important"
	ImportanceNot      = "not_important"
)

// Continue-education intents.
const (
	ContinueYes   = "yes"
	ContinueNo    = "no"
	ContinueMaybe = "maybe"
)

// Housing preferences.
const (
	HousingOnCampus  = "on_campus"
	HousingOffCampus = "off_campus"
	HousingCommute   = "commute"
)

// Transportation modes.
const (
	TransportCar     = "car"
	TransportTransit = "public_transit"
	TransportWalk    = "walk_bike"
)

// Recognized questionnaire keys. Anything else lands in Extra.
const (
	keyCostOfAttendance  = "cost_of_attendance"
	keyClassSize         = "class_size"
	keyCampusSetting     = "campus_setting"
	keyTransportation    = "transportation"
	keyInStateOutOfState = "in_state_out_of_state"
	keyHousing           = "housing"
	keyRankingImportance = "ranking_importance"
	keyContinueEducation = "continue_education"
	keyCompaniesNearby   = "companies_nearby"
	keyExtracurriculars  = "extracurriculars"
)

// Questionnaire is the canonical, enum-coerced view of a user's raw answers.
// Free-text fields are carried verbatim; they are sanitized only at the
// AI-prompt boundary.
type Questionnaire struct {
	CostOfAttendance  string
	ClassSize         string
	CampusSetting     string
	Transportation    string
	InStateOutOfState string
	Housing           string
	RankingImportance string
	ContinueEducation string
	CompaniesNearby   string
	Extracurriculars  string
	Extra             map[string]string
}

// NormalizeAnswers coerces a raw key/value answer map into the canonical
// enum space. Keys and enumerated values are matched case- and
// separator-insensitively; unrecognized values become NoPreference and
// unrecognized keys are retained in Extra.
func NormalizeAnswers(raw map[string]string) Questionnaire {
	q := Questionnaire{
		CostOfAttendance:  NoPreference,
		ClassSize:         NoPreference,
		CampusSetting:     NoPreference,
		Transportation:    NoPreference,
		InStateOutOfState: NoPreference,
		Housing:           NoPreference,
		RankingImportance: NoPreference,
		ContinueEducation: NoPreference,
	}
	for k, v := range raw {
		switch canonicalKey(k) {
		case keyCostOfAttendance:
			q.CostOfAttendance = coerceEnum(v, CostLow, CostMedium, CostHigh)
		case keyClassSize:
			q.ClassSize = coerceEnum(v, SizeSmall, SizeMedium, SizeLarge)
		case keyCampusSetting:
			q.CampusSetting = coerceEnum(v, SettingUrban, SettingSuburban, SettingRural)
		case keyTransportation:
			q.Transportation = coerceEnum(v, TransportCar, TransportTransit, TransportWalk)
		case keyInStateOutOfState:
			q.InStateOutOfState = coerceEnum(v, GeoInState, GeoOutOfState)
		case keyHousing:
			q.Housing = coerceEnum(v, HousingOnCampus, HousingOffCampus, HousingCommute)
		case keyRankingImportance:
			q.RankingImportance = coerceEnum(v, ImportanceVery, ImportanceSomewhat, ImportanceNot)
		case keyContinueEducation:
			q.ContinueEducation = coerceEnum(v, ContinueYes, ContinueNo, ContinueMaybe)
		case keyCompaniesNearby:
			q.CompaniesNearby = strings.TrimSpace(v)
		case keyExtracurriculars:
			q.Extracurriculars = strings.TrimSpace(v)
		default:
			if q.Extra == nil {
				q.Extra = make(map[string]string)
			}
			q.Extra[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return q
}

// freeTextAnswers returns every free-text field, canonical plus Extra.
func (q Questionnaire) freeTextAnswers() []string {
	out := []string{q.CompaniesNearby, q.Extracurriculars}
	for _, v := range q.Extra {
		out = append(out, v)
	}
	return out
}

// canonicalKey lowercases and collapses separators so "costOfAttendance",
// "Cost-Of-Attendance", and "cost_of_attendance" all canonicalize alike.
func canonicalKey(raw string) string {
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'A' && r <= 'Z':
			// boundary only after a lowercase letter, so "ABBR" and "20K"
			// stay single words
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && prev != ' ' && prev != '-' && prev != '_' {
				b.WriteByte('_')
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.Trim(b.String(), "_")
}

// coerceEnum canonicalizes a value and returns it if it is one of the
// allowed enum values, otherwise NoPreference.
func coerceEnum(raw string, allowed ...string) string {
	v := canonicalKey(raw)
	for _, a := range allowed {
		if v == a {
			return a
		}
	}
	return NoPreference
}
