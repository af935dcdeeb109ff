package colleges

import (
	"context"
	"sort"
	"strings"
	"sync"
)

const memorySource = "fixtures"

// MemoryRepo serves candidates from an in-memory set. Used as the dev
// fallback when no database or remote API is configured, and by tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	colleges map[string]Candidate
}

// NewMemoryRepo builds a memory repo seeded with the bundled fixture set.
func NewMemoryRepo() *MemoryRepo {
	return NewMemoryRepoWith(FixtureSet())
}

// NewMemoryRepoWith builds a memory repo over the given candidates.
func NewMemoryRepoWith(candidates []Candidate) *MemoryRepo {
	m := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		m[c.ID] = c
	}
	return &MemoryRepo{colleges: m}
}

func (r *MemoryRepo) Candidates(ctx context.Context, f Filter) (CandidateSet, error) {
	if err := ctx.Err(); err != nil {
		return CandidateSet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := strings.ToUpper(strings.TrimSpace(f.State))
	var out []Candidate
	for _, c := range r.colleges {
		if state != "" && strings.ToUpper(c.State) != state {
			continue
		}
		out = append(out, c)
	}
	sortByName(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return CandidateSet{Candidates: out, Source: memorySource}, nil
}

func (r *MemoryRepo) SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error) {
	if err := ctx.Err(); err != nil {
		return CandidateSet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Candidate
	for _, c := range r.colleges {
		if matchesName(c, q) {
			out = append(out, c)
		}
	}
	sortByName(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return CandidateSet{Candidates: out, Source: memorySource}, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.colleges[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return c, nil
}

// Upsert adds or replaces a candidate.
func (r *MemoryRepo) Upsert(ctx context.Context, c Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colleges[c.ID] = c
	return nil
}

func sortByName(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool {
		return strings.ToLower(cs[i].Name) < strings.ToLower(cs[j].Name)
	})
}

func f(v float64) *float64 { return &v }

// FixtureSet is a small hand-curated catalog covering the states and program
// mixes the dev environment and tests need. Rate fields intentionally mix
// fraction and percentage representations, matching what the live sources do.
func FixtureSet() []Candidate {
	return []Candidate{
		{
			ID: "uf", Name: "University of Florida", City: "Gainesville", State: "FL",
			Tuition: f(6381), Size: SizeLarge, Setting: SettingSuburban,
			AdmissionRate: f(0.23), CompletionRate: f(0.90), PellRate: f(0.28), MedianDebt: f(15900),
			Programs:  []string{"Computer Science", "Mechanical Engineering", "Biology", "Business Administration"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "fsu", Name: "Florida State University", City: "Tallahassee", State: "FL",
			Tuition: f(5656), Size: SizeLarge, Setting: SettingUrban,
			AdmissionRate: f(25), CompletionRate: f(85), PellRate: f(31), MedianDebt: f(17500),
			Programs:  []string{"Computer Science", "Criminology", "Psychology", "Finance"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "ucf", Name: "University of Central Florida", City: "Orlando", State: "FL",
			Tuition: f(6368), Size: SizeLarge, Setting: SettingUrban,
			AdmissionRate: f(0.41), CompletionRate: f(0.75), PellRate: f(0.36), MedianDebt: f(18200),
			Programs:  []string{"Computer Science", "Hospitality Management", "Nursing"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "sfc", Name: "Santa Fe College", City: "Gainesville", State: "FL",
			Tuition: f(2563), Size: SizeMedium, Setting: SettingSuburban,
			CompletionRate: f(0.48), PellRate: f(0.52), MedianDebt: f(9500),
			Programs:  []string{"Information Technology", "Nursing", "Business Administration"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "miami", Name: "University of Miami", City: "Coral Gables", State: "FL",
			Tuition: f(57194), Size: SizeMedium, Setting: SettingSuburban,
			AdmissionRate: f(0.19), CompletionRate: f(0.84), PellRate: f(0.17), MedianDebt: f(21000),
			Programs:  []string{"Marine Biology", "Music", "Business Administration", "Computer Science"},
			Ownership: OwnershipPrivate,
		},
		{
			ID: "uw", Name: "University of Washington", City: "Seattle", State: "WA",
			Tuition: f(12242), Size: SizeLarge, Setting: SettingUrban,
			AdmissionRate: f(0.48), CompletionRate: f(0.84), PellRate: f(0.22), MedianDebt: f(14500),
			Programs:  []string{"Computer Science", "Informatics", "Oceanography", "Public Health"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "wsu", Name: "Washington State University", City: "Pullman", State: "WA",
			Tuition: f(12116), Size: SizeLarge, Setting: SettingRural,
			AdmissionRate: f(83), CompletionRate: f(62), PellRate: f(33), MedianDebt: f(20500),
			Programs:  []string{"Agriculture", "Veterinary Medicine", "Computer Science"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "spu", Name: "Seattle Pacific University", City: "Seattle", State: "WA",
			Tuition: f(48807), Size: SizeSmall, Setting: SettingUrban,
			AdmissionRate: f(0.91), CompletionRate: f(0.70), PellRate: f(0.29), MedianDebt: f(23000),
			Programs:  []string{"Theology", "Education", "Nursing"},
			Ownership: OwnershipPrivate,
		},
		{
			ID: "osu", Name: "Oregon State University", City: "Corvallis", State: "OR",
			Tuition: f(13191), Size: SizeLarge, Setting: SettingSuburban,
			AdmissionRate: f(0.83), CompletionRate: f(0.67), PellRate: f(0.30), MedianDebt: f(19800),
			Programs:  []string{"Forestry", "Computer Science", "Oceanography"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "gt", Name: "Georgia Institute of Technology", City: "Atlanta", State: "GA",
			Tuition: f(10258), Size: SizeLarge, Setting: SettingUrban,
			AdmissionRate: f(0.17), CompletionRate: f(0.92), PellRate: f(0.14), MedianDebt: f(12000),
			Programs:  []string{"Computer Science", "Aerospace Engineering", "Industrial Design"},
			Ownership: OwnershipPublic,
		},
		{
			ID: "berea", Name: "Berea College", City: "Berea", State: "KY",
			Size: SizeSmall, Setting: SettingRural,
			AdmissionRate: f(0.33), CompletionRate: f(0.64), PellRate: f(0.94),
			Programs:  []string{"Sustainability", "Education", "Nursing"},
			Ownership: OwnershipPrivate,
		},
		{
			ID: "calpoly", Name: "California Polytechnic State University", City: "San Luis Obispo", State: "CA",
			Tuition: f(10194), Size: SizeLarge, Setting: SettingSuburban,
			AdmissionRate: f(0.30), CompletionRate: f(0.85), PellRate: f(0.20), MedianDebt: f(17800),
			Programs:  []string{"Architecture", "Computer Science", "Agricultural Business"},
			Ownership: OwnershipPublic,
		},
	}
}
