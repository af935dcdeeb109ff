package colleges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	scorecardDefaultBaseURL = "https://api.data.gov/ed/collegescorecard/v1"
	scorecardSource         = "scorecard"
	scorecardDefaultPerPage = 100
)

var scorecardFields = strings.Join([]string{
	"id",
	"school.name",
	"school.city",
	"school.state",
	"school.ownership",
	"school.locale",
	"latest.student.size",
	"latest.cost.tuition.in_state",
	"latest.admissions.admission_rate.overall",
	"latest.completion.consumer_rate",
	"latest.aid.pell_grant_rate",
	"latest.aid.median_debt.completers.overall",
	"latest.programs.cip_4_digit.title",
}, ",")

// ScorecardClient fetches candidates from the College Scorecard API.
type ScorecardClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewScorecardClient constructs a client for the College Scorecard API.
func NewScorecardClient(apiKey, baseURL string) (*ScorecardClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("SCORECARD_API_KEY is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = scorecardDefaultBaseURL
	}
	return &ScorecardClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// scorecardSchool mirrors the flattened dotted-key JSON the API returns.
type scorecardSchool struct {
	ID             json.Number `json:"id"`
	Name           string      `json:"school.name"`
	City           string      `json:"school.city"`
	State          string      `json:"school.state"`
	Ownership      int         `json:"school.ownership"`
	Locale         int         `json:"school.locale"`
	StudentSize    *float64    `json:"latest.student.size"`
	TuitionInState *float64    `json:"latest.cost.tuition.in_state"`
	AdmissionRate  *float64    `json:"latest.admissions.admission_rate.overall"`
	CompletionRate *float64    `json:"latest.completion.consumer_rate"`
	PellRate       *float64    `json:"latest.aid.pell_grant_rate"`
	MedianDebt     *float64    `json:"latest.aid.median_debt.completers.overall"`
	Programs       []struct {
		Title string `json:"title"`
	} `json:"latest.programs.cip_4_digit"`
}

type scorecardResponse struct {
	Results []scorecardSchool `json:"results"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *ScorecardClient) Candidates(ctx context.Context, f Filter) (CandidateSet, error) {
	params := url.Values{}
	if strings.TrimSpace(f.State) != "" {
		params.Set("school.state", strings.ToUpper(strings.TrimSpace(f.State)))
	}
	return c.query(ctx, params, f.Limit)
}

func (c *ScorecardClient) SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error) {
	params := url.Values{}
	params.Set("school.name", strings.TrimSpace(q))
	return c.query(ctx, params, limit)
}

func (c *ScorecardClient) GetByID(ctx context.Context, id string) (Candidate, error) {
	params := url.Values{}
	params.Set("id", strings.TrimSpace(id))
	set, err := c.query(ctx, params, 1)
	if err != nil {
		return Candidate{}, err
	}
	if len(set.Candidates) == 0 {
		return Candidate{}, ErrNotFound
	}
	return set.Candidates[0], nil
}

func (c *ScorecardClient) query(ctx context.Context, params url.Values, limit int) (CandidateSet, error) {
	if limit <= 0 || limit > scorecardDefaultPerPage {
		limit = scorecardDefaultPerPage
	}
	params.Set("api_key", c.apiKey)
	params.Set("fields", scorecardFields)
	params.Set("per_page", strconv.Itoa(limit))

	reqURL := c.baseURL + "/schools?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return CandidateSet{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return CandidateSet{}, fmt.Errorf("scorecard request timeout: %w", err)
		}
		return CandidateSet{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CandidateSet{}, err
	}

	var parsed scorecardResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return CandidateSet{}, fmt.Errorf("scorecard http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return CandidateSet{}, fmt.Errorf("scorecard response parse: %w", err)
	}
	if parsed.Error != nil {
		return CandidateSet{}, fmt.Errorf("scorecard error: %s", parsed.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return CandidateSet{}, fmt.Errorf("scorecard http status %d", resp.StatusCode)
	}

	out := make([]Candidate, 0, len(parsed.Results))
	for _, s := range parsed.Results {
		out = append(out, mapScorecardSchool(s))
	}
	return CandidateSet{Candidates: out, Source: scorecardSource}, nil
}

func mapScorecardSchool(s scorecardSchool) Candidate {
	programs := make([]string, 0, len(s.Programs))
	for _, p := range s.Programs {
		if strings.TrimSpace(p.Title) != "" {
			programs = append(programs, p.Title)
		}
	}

	size := SizeUnknown
	if s.StudentSize != nil {
		size = SizeFromEnrollment(int(*s.StudentSize))
	}

	return Candidate{
		ID:             s.ID.String(),
		Name:           s.Name,
		City:           s.City,
		State:          s.State,
		Tuition:        s.TuitionInState,
		Size:           size,
		Setting:        settingFromLocale(s.Locale),
		AdmissionRate:  s.AdmissionRate,
		CompletionRate: s.CompletionRate,
		PellRate:       s.PellRate,
		MedianDebt:     s.MedianDebt,
		Programs:       programs,
		Ownership:      ownershipFromCode(s.Ownership),
	}
}

// settingFromLocale maps IPEDS locale codes (11-13 city, 21-23 suburb,
// 31-33 town, 41-43 rural) to a setting category.
func settingFromLocale(locale int) string {
	switch {
	case locale >= 11 && locale <= 13:
		return SettingUrban
	case locale >= 21 && locale <= 23:
		return SettingSuburban
	case locale >= 31 && locale <= 43:
		return SettingRural
	default:
		return SettingUnknown
	}
}

func ownershipFromCode(code int) string {
	switch code {
	case 1:
		return OwnershipPublic
	case 2, 3:
		return OwnershipPrivate
	default:
		return ""
	}
}
