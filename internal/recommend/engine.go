package recommend

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"time"

	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/llm"
	"gatorguide-backend/internal/profiles"
	"gatorguide-backend/internal/shared/telemetry"
)

// gpaFitCapThreshold and gpaFitCapValue guard against prestige or
// preference alone propelling an academically mismatched school to the
// top: a valid GPA with fit under the threshold caps the base score.
const (
	gpaFitCapThreshold = 40
	gpaFitCapValue     = 65
)

// Engine is the recommendation pipeline. It is stateless per request;
// diagnostics are returned with each response rather than held on the
// engine.
type Engine struct {
	provider      colleges.Provider
	ai            llm.Client
	fallbackState string
	aiTimeout     time.Duration
}

// NewEngine wires the engine to its collaborators. ai may be nil, in which
// case every candidate gets the neutral AI factor. fallbackState is the
// two-letter state guests default to.
func NewEngine(provider colleges.Provider, ai llm.Client, fallbackState string, aiTimeout time.Duration) *Engine {
	if aiTimeout <= 0 {
		aiTimeout = defaultAITimeout
	}
	return &Engine{
		provider:      provider,
		ai:            ai,
		fallbackState: fallbackState,
		aiTimeout:     aiTimeout,
	}
}

// Recommend runs one recommendation request for the given profile. Expected
// zero-result conditions come back as an EmptyState in the response, never
// as an error; the returned error is reserved for genuinely unexpected
// failures.
func (e *Engine) Recommend(ctx context.Context, profile *profiles.Profile, req Request) (Response, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	query := strings.TrimSpace(req.Query)

	if !req.IsWeighted() {
		return e.search(ctx, query, maxResults)
	}
	return e.weighted(ctx, profile, req, query, maxResults)
}

// search is the non-weighted mode: a plain name search with neutral score
// metadata and no scoring pipeline.
func (e *Engine) search(ctx context.Context, query string, maxResults int) (Response, error) {
	diag := &Diagnostics{Mode: "search"}
	if len(query) < minQueryLength {
		diag.Notes = append(diag.Notes, "query under two characters, not searched")
		return Response{Results: []Result{}, EmptyState: emptyState(EmptyQueryNoResults), Diagnostics: diag}, nil
	}

	set, err := e.provider.SearchByName(ctx, query, maxResults)
	if err != nil {
		telemetry.Error("recommend search failed", map[string]any{"error": err.Error()})
		diag.Notes = append(diag.Notes, "name search failed: "+err.Error())
		return Response{Results: []Result{}, EmptyState: emptyState(classifyFetchError(err)), Diagnostics: diag}, nil
	}
	diag.Source = set.Source
	diag.Fetched = len(set.Candidates)

	candidates := set.Candidates
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, Result{College: collegeView(c), Score: 50})
	}
	diag.Scored = len(results)
	return Response{Results: results, Diagnostics: diag}, nil
}

func (e *Engine) weighted(ctx context.Context, profile *profiles.Profile, req Request, query string, maxResults int) (Response, error) {
	diag := &Diagnostics{Mode: "weighted"}

	q := NormalizeAnswers(req.Answers)
	gpa, hasGPA := 0.0, false
	if profile != nil {
		gpa, hasGPA = parseGPA(profile.GPA)
	}
	blend := blendWeightsFor(&q)
	dimWeights := BuildWeights(profile, &q, query)

	wantsInState := q.InStateOutOfState == GeoInState
	effectiveState, fellBack, ok := e.resolveState(profile, diag)
	if wantsInState && !ok {
		return Response{Results: []Result{}, EmptyState: emptyState(EmptyInStateStateMissing), Diagnostics: diag}, nil
	}
	diag.ResolvedState = effectiveState
	diag.StateFallback = fellBack

	candidates, source, code := e.fetchCandidates(ctx, wantsInState, effectiveState, diag)
	if code != "" {
		return Response{Results: []Result{}, EmptyState: emptyState(code), Diagnostics: diag}, nil
	}
	diag.Source = source

	type scored struct {
		candidate colleges.Candidate
		factors   Factors
		base      int
	}
	pass := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		f := Factors{
			GPAFit:        gpaFitScore(gpa, hasGPA, c.AdmissionRate),
			Prestige:      prestigeScore(c.AdmissionRate),
			MajorFit:      majorFitScore(c, profile),
			PreferenceFit: preferenceFitScore(c, &q),
		}
		base := roundToInt(float64(f.GPAFit)*blend.gpa +
			float64(f.Prestige)*blend.prestige +
			float64(f.MajorFit)*blend.major +
			float64(f.PreferenceFit)*blend.preference)
		base = clampScore(base)
		if hasGPA && f.GPAFit < gpaFitCapThreshold && base > gpaFitCapValue {
			base = gpaFitCapValue
		}
		pass = append(pass, scored{candidate: c, factors: f, base: base})
	}
	sort.SliceStable(pass, func(i, j int) bool {
		if pass[i].base != pass[j].base {
			return pass[i].base > pass[j].base
		}
		return pass[i].candidate.Name < pass[j].candidate.Name
	})
	diag.Scored = len(pass)

	aiSubset := make([]colleges.Candidate, 0, aiCandidateLimit)
	for i := range pass {
		if i >= aiCandidateLimit {
			break
		}
		aiSubset = append(aiSubset, pass[i].candidate)
	}
	diag.AICandidates = len(aiSubset)
	factors := aiFactors(ctx, e.ai, aiSubset, profile, &q, query, e.aiTimeout)

	scoreQuery := len(query) >= minQueryLength
	results := make([]Result, 0, len(pass))
	for _, s := range pass {
		f := s.factors
		f.AIFit = neutralAIFactor
		if v, ok := factors[s.candidate.ID]; ok {
			f.AIFit = v
		}
		queryBoost := 0
		if scoreQuery {
			f.QueryMatch = QueryMatchScore(s.candidate, query)
			queryBoost = roundToInt(float64(f.QueryMatch) / 100 * 10)
		}
		final := clampScore(roundToInt(float64(s.base)*0.9 + float64(f.AIFit)*0.1 + float64(queryBoost)))

		aiFit := f.AIFit
		breakdown := ScoreCandidate(s.candidate, dimWeights, profile, &q, &aiFit)
		results = append(results, Result{
			College:     collegeView(s.candidate),
			Score:       final,
			Factors:     &f,
			Breakdown:   &breakdown,
			Explanation: buildExplanation(f, scoreQuery, fellBack, effectiveState),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].College.Name < results[j].College.Name
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	for _, r := range results {
		diag.Top = append(diag.Top, DiagnosticResult{
			ID:      r.College.ID,
			Name:    r.College.Name,
			Score:   r.Score,
			Factors: r.Factors,
		})
	}
	return Response{Results: results, Diagnostics: diag}, nil
}

// resolveState picks the state used for in-state scoping. Guests without a
// profile state fall back to the configured default; a signed-in user
// without one cannot be resolved and ok is false.
func (e *Engine) resolveState(profile *profiles.Profile, diag *Diagnostics) (state string, fellBack, ok bool) {
	if profile != nil && strings.TrimSpace(profile.State) != "" {
		if abbr := StateAbbreviation(profile.State); abbr != "" {
			return abbr, false, true
		}
		diag.Notes = append(diag.Notes, "profile state not recognized: "+profile.State)
	}
	if profile == nil || profile.Guest {
		diag.Notes = append(diag.Notes, "guest without profile state, using fallback state "+e.fallbackState)
		return e.fallbackState, true, true
	}
	diag.Notes = append(diag.Notes, "signed-in user has no profile state")
	return "", false, false
}

// fetchCandidates asks the provider for candidates, scoped to the resolved
// state in in-state mode with an unscoped retry plus client-side filter
// when the scoped fetch comes back empty. A non-empty returned code means
// the caller should answer with that empty-state.
func (e *Engine) fetchCandidates(ctx context.Context, wantsInState bool, state string, diag *Diagnostics) ([]colleges.Candidate, string, string) {
	filter := colleges.Filter{}
	if wantsInState {
		filter.State = state
	}
	set, err := e.provider.Candidates(ctx, filter)
	if err != nil {
		telemetry.Error("recommend candidate fetch failed", map[string]any{"error": err.Error()})
		diag.Notes = append(diag.Notes, "candidate fetch failed: "+err.Error())
		return nil, "", classifyFetchError(err)
	}
	diag.Fetched = len(set.Candidates)
	candidates := set.Candidates
	source := set.Source

	if wantsInState && len(candidates) == 0 {
		diag.Notes = append(diag.Notes, "state-scoped fetch empty, retrying unscoped")
		unscoped, err := e.provider.Candidates(ctx, colleges.Filter{})
		if err != nil {
			telemetry.Error("recommend fallback fetch failed", map[string]any{"error": err.Error()})
			diag.Notes = append(diag.Notes, "fallback fetch failed: "+err.Error())
			return nil, "", classifyFetchError(err)
		}
		diag.Fetched = len(unscoped.Candidates)
		source = unscoped.Source
		candidates = unscoped.Candidates
	}

	if wantsInState {
		filtered := candidates[:0:0]
		for _, c := range candidates {
			if StateMatches(c.State, state) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
		diag.Filtered = len(candidates)
		if len(candidates) == 0 {
			diag.Notes = append(diag.Notes, "no candidates match state "+state)
			return nil, source, EmptyInStateNoMatches
		}
	} else {
		diag.Filtered = len(candidates)
	}
	return candidates, source, ""
}

// classifyFetchError maps a provider failure onto the empty-state taxonomy.
func classifyFetchError(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return EmptyNetworkTimeout
	}
	if strings.Contains(err.Error(), "timeout") {
		return EmptyNetworkTimeout
	}
	return EmptyUpstreamError
}

// blendWeights are the base-score multipliers of the ranking pass. They are
// distinct from the questionnaire-derived WeightSet and always sum to 1.
type blendWeights struct {
	gpa        float64
	prestige   float64
	major      float64
	preference float64
}

// blendWeightsFor shifts the baseline blend by the ranking-importance and
// continue-education answers, then renormalizes to 1.0.
func blendWeightsFor(q *Questionnaire) blendWeights {
	w := blendWeights{gpa: 0.35, prestige: 0.25, major: 0.2, preference: 0.2}
	if q != nil {
		switch q.RankingImportance {
		case ImportanceVery:
			w.prestige += 0.10
		case ImportanceSomewhat:
			w.prestige += 0.05
		}
		if q.ContinueEducation == ContinueYes {
			w.gpa += 0.05
			w.major += 0.05
		}
	}
	total := w.gpa + w.prestige + w.major + w.preference
	w.gpa /= total
	w.prestige /= total
	w.major /= total
	w.preference /= total
	return w
}

// gpaFitScore positions the student's GPA against the GPA band implied by
// the school's admission rate. Open-admission schools expect roughly 2.4,
// the most selective roughly 3.8, 3.0 when the rate is unknown. No GPA
// scores neutral.
func gpaFitScore(gpa float64, hasGPA bool, admissionRate *float64) int {
	if !hasGPA {
		return 50
	}
	expected := 3.0
	if rate := normalizeRate(admissionRate); rate != nil {
		expected = 2.4 + (1-*rate)*1.4
	}
	return clampScore(roundToInt(75 + (gpa-expected)*50))
}

// majorFitScore: 90 when any program matches the declared major, 20 when a
// major is declared but nothing matches, 50 when no major is declared.
func majorFitScore(c colleges.Candidate, profile *profiles.Profile) int {
	major := ""
	if profile != nil {
		major = strings.TrimSpace(profile.Major)
	}
	if major == "" {
		return 50
	}
	if programsContain(c.Programs, major) {
		return 90
	}
	return 20
}

// preferenceFitScore averages the cost, debt, aid, size, and setting
// sub-fits against the questionnaire.
func preferenceFitScore(c colleges.Candidate, q *Questionnaire) int {
	sub := []int{
		costBracketFit(c.Tuition, q),
		debtScore(c.MedianDebt),
		aidScore(c.PellRate),
		categoryScore(preference(q, func(q *Questionnaire) string { return q.ClassSize }), c.Size),
		categoryScore(preference(q, func(q *Questionnaire) string { return q.CampusSetting }), c.Setting),
	}
	total := 0
	for _, v := range sub {
		total += v
	}
	return clampScore(roundToInt(float64(total) / float64(len(sub))))
}

// costBracketFit scores tuition against the stated cost bracket: inside
// the bracket is a full match, one bracket off is a partial match, two off
// a poor one. Without a bracket it falls back to the linear cost scale.
func costBracketFit(tuition *float64, q *Questionnaire) int {
	bracket := preference(q, func(q *Questionnaire) string { return q.CostOfAttendance })
	if bracket == NoPreference {
		return costScore(tuition)
	}
	if tuition == nil {
		return 50
	}
	actual := CostHigh
	switch {
	case *tuition < 20000:
		actual = CostLow
	case *tuition <= 40000:
		actual = CostMedium
	}
	distance := bracketIndex(actual) - bracketIndex(bracket)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return 100
	case 1:
		return 60
	default:
		return 25
	}
}

func bracketIndex(bracket string) int {
	switch bracket {
	case CostLow:
		return 0
	case CostMedium:
		return 1
	default:
		return 2
	}
}
