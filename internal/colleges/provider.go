package colleges

import (
	"context"
	"log"
	"strings"
)

// ErrNotFound is returned when a college id has no match.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "college not found" }

// Filter scopes a candidate fetch.
type Filter struct {
	State string
	Limit int
}

// CandidateSet is a fetch result along with the source that answered it,
// kept for recommendation diagnostics.
type CandidateSet struct {
	Candidates []Candidate
	Source     string
}

// Provider is the college-data collaborator consumed by the recommendation
// engine. Implementations may be a live remote API, a database cache, or
// fixture data; callers must not depend on which one answered.
type Provider interface {
	Candidates(ctx context.Context, f Filter) (CandidateSet, error)
	SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error)
	GetByID(ctx context.Context, id string) (Candidate, error)
}

// FallbackProvider tries a primary provider and falls back to a secondary on
// error or empty answer. The returned set carries whichever source answered.
type FallbackProvider struct {
	Primary   Provider
	Secondary Provider
}

func (p *FallbackProvider) Candidates(ctx context.Context, f Filter) (CandidateSet, error) {
	set, err := p.Primary.Candidates(ctx, f)
	if err == nil && len(set.Candidates) > 0 {
		return set, nil
	}
	if err != nil {
		log.Printf("colleges: primary candidates failed, falling back: %v", err)
	}
	return p.Secondary.Candidates(ctx, f)
}

func (p *FallbackProvider) SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error) {
	set, err := p.Primary.SearchByName(ctx, q, limit)
	if err == nil && len(set.Candidates) > 0 {
		return set, nil
	}
	if err != nil {
		log.Printf("colleges: primary search failed, falling back: %v", err)
	}
	return p.Secondary.SearchByName(ctx, q, limit)
}

func (p *FallbackProvider) GetByID(ctx context.Context, id string) (Candidate, error) {
	c, err := p.Primary.GetByID(ctx, id)
	if err == nil {
		return c, nil
	}
	return p.Secondary.GetByID(ctx, id)
}

func matchesName(c Candidate, q string) bool {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), needle)
}
