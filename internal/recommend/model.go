package recommend

import "gatorguide-backend/internal/colleges"

// DefaultMaxResults bounds a response when the caller does not say how
// many results it wants.
const DefaultMaxResults = 12

// Request is one recommendation invocation. Weighted mode runs the full
// scoring pipeline; search mode is a plain name search with neutral scores.
type Request struct {
	Query      string            `json:"query"`
	Answers    map[string]string `json:"answers"`
	MaxResults int               `json:"maxResults"`
	Weighted   *bool             `json:"weighted"`
}

// IsWeighted defaults to true: weighted is the primary mode and search is
// the explicit opt-out.
func (r Request) IsWeighted() bool {
	return r.Weighted == nil || *r.Weighted
}

// Location is the city/state pair surfaced on each result college.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// College is the caller-facing view of a candidate.
type College struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  Location `json:"location"`
	Tuition   *float64 `json:"tuition,omitempty"`
	Size      string   `json:"size,omitempty"`
	Setting   string   `json:"setting,omitempty"`
	Ownership string   `json:"ownership,omitempty"`
	Programs  []string `json:"programs,omitempty"`
}

func collegeView(c colleges.Candidate) College {
	return College{
		ID:        c.ID,
		Name:      c.Name,
		Location:  Location{City: c.City, State: c.State},
		Tuition:   c.Tuition,
		Size:      c.Size,
		Setting:   c.Setting,
		Ownership: c.Ownership,
		Programs:  c.Programs,
	}
}

// Factors are the named sub-scores behind a weighted-mode ranking. All are
// integers in [0,100].
type Factors struct {
	GPAFit        int `json:"gpaFit"`
	Prestige      int `json:"prestige"`
	MajorFit      int `json:"majorFit"`
	PreferenceFit int `json:"preferenceFit"`
	AIFit         int `json:"aiFit"`
	QueryMatch    int `json:"queryMatch"`
}

// Result is one ranked college with its score, factor breakdown, and a
// short human-readable explanation.
type Result struct {
	College     College    `json:"college"`
	Score       int        `json:"score"`
	Factors     *Factors   `json:"factors,omitempty"`
	Breakdown   *Breakdown `json:"breakdown,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

// Response is what the engine hands back: a ranked list, or an empty list
// with an EmptyState explaining why, plus a diagnostics snapshot of the run.
type Response struct {
	Results     []Result     `json:"results"`
	EmptyState  *EmptyState  `json:"emptyState,omitempty"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// DiagnosticResult is the compact per-result view kept in diagnostics.
type DiagnosticResult struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Factors *Factors `json:"factors,omitempty"`
}

// Diagnostics is a read-only snapshot of a single run, returned with the
// response rather than held on the engine. Notes record every fallback
// path the run took.
type Diagnostics struct {
	RunID         string             `json:"runId,omitempty"`
	Mode          string             `json:"mode"`
	ResolvedState string             `json:"resolvedState,omitempty"`
	StateFallback bool               `json:"stateFallback,omitempty"`
	Source        string             `json:"source,omitempty"`
	Fetched       int                `json:"fetched"`
	Filtered      int                `json:"filtered"`
	Scored        int                `json:"scored"`
	AICandidates  int                `json:"aiCandidates"`
	Top           []DiagnosticResult `json:"top,omitempty"`
	Notes         []string           `json:"notes,omitempty"`
}
