package recommend

import "strings"

// stateNames maps two-letter USPS abbreviations to lowercase full names.
var stateNames = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"dc": "district of columbia", "fl": "florida", "ga": "georgia",
	"hi": "hawaii", "id": "idaho", "il": "illinois", "in": "indiana",
	"ia": "iowa", "ks": "kansas", "ky": "kentucky", "la": "louisiana",
	"me": "maine", "md": "maryland", "ma": "massachusetts", "mi": "michigan",
	"mn": "minnesota", "ms": "mississippi", "mo": "missouri", "mt": "montana",
	"ne": "nebraska", "nv": "nevada", "nh": "new hampshire", "nj": "new jersey",
	"nm": "new mexico", "ny": "new york", "nc": "north carolina",
	"nd": "north dakota", "oh": "ohio", "ok": "oklahoma", "or": "oregon",
	"pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington",
	"wv": "west virginia", "wi": "wisconsin", "wy": "wyoming",
}

// normalizeStateText lowercases, trims, strips periods and a trailing
// "state" qualifier ("Washington State" -> "washington").
func normalizeStateText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimSpace(strings.TrimSuffix(s, " state"))
	return s
}

// StateMatches reports whether two free-text state representations (full
// name or 2-letter abbreviation, arbitrary case and punctuation) denote the
// same US state.
func StateMatches(a, b string) bool {
	na := normalizeStateText(a)
	nb := normalizeStateText(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if len(na) == 2 {
		if full, ok := stateNames[na]; ok {
			na = full
		}
	}
	if len(nb) == 2 {
		if full, ok := stateNames[nb]; ok {
			nb = full
		}
	}
	return na == nb
}

// StateAbbreviation returns the canonical 2-letter abbreviation for a state
// given in any supported representation, or "" when unrecognized.
func StateAbbreviation(raw string) string {
	s := normalizeStateText(raw)
	if s == "" {
		return ""
	}
	if len(s) == 2 {
		if _, ok := stateNames[s]; ok {
			return strings.ToUpper(s)
		}
		return ""
	}
	for abbr, full := range stateNames {
		if full == s {
			return strings.ToUpper(abbr)
		}
	}
	return ""
}
