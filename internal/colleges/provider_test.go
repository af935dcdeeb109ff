package colleges

import (
	"context"
	"errors"
	"testing"
)

// flakyProvider answers with set unless err is set.
type flakyProvider struct {
	err error
	set CandidateSet
}

func (p *flakyProvider) Candidates(ctx context.Context, f Filter) (CandidateSet, error) {
	if p.err != nil {
		return CandidateSet{}, p.err
	}
	return p.set, nil
}

func (p *flakyProvider) SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error) {
	if p.err != nil {
		return CandidateSet{}, p.err
	}
	return p.set, nil
}

func (p *flakyProvider) GetByID(ctx context.Context, id string) (Candidate, error) {
	if p.err != nil {
		return Candidate{}, p.err
	}
	if len(p.set.Candidates) == 0 {
		return Candidate{}, ErrNotFound
	}
	return p.set.Candidates[0], nil
}

func TestFallbackProvider_Candidates(t *testing.T) {
	primarySet := CandidateSet{Candidates: []Candidate{{ID: "p1"}}, Source: "primary"}
	secondarySet := CandidateSet{Candidates: []Candidate{{ID: "s1"}}, Source: "secondary"}

	tests := []struct {
		name       string
		primary    *flakyProvider
		wantSource string
	}{
		{name: "primary answers", primary: &flakyProvider{set: primarySet}, wantSource: "primary"},
		{name: "primary fails", primary: &flakyProvider{err: errors.New("boom")}, wantSource: "secondary"},
		{name: "primary empty", primary: &flakyProvider{set: CandidateSet{Source: "primary"}}, wantSource: "secondary"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &FallbackProvider{Primary: tt.primary, Secondary: &flakyProvider{set: secondarySet}}
			set, err := p.Candidates(context.Background(), Filter{})
			if err != nil {
				t.Fatalf("Candidates: %v", err)
			}
			if set.Source != tt.wantSource {
				t.Fatalf("source = %q, want %q", set.Source, tt.wantSource)
			}
		})
	}
}

func TestFallbackProvider_BothFail(t *testing.T) {
	p := &FallbackProvider{
		Primary:   &flakyProvider{err: errors.New("primary down")},
		Secondary: &flakyProvider{err: errors.New("secondary down")},
	}
	if _, err := p.Candidates(context.Background(), Filter{}); err == nil {
		t.Fatal("expected error when both providers fail")
	}
}

func TestMemoryRepo_Candidates(t *testing.T) {
	repo := NewMemoryRepo()

	all, err := repo.Candidates(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(all.Candidates) == 0 {
		t.Fatal("fixture set should not be empty")
	}
	if all.Source != memorySource {
		t.Fatalf("source = %q, want %q", all.Source, memorySource)
	}

	wa, err := repo.Candidates(context.Background(), Filter{State: "wa"})
	if err != nil {
		t.Fatalf("Candidates(WA): %v", err)
	}
	if len(wa.Candidates) == 0 || len(wa.Candidates) == len(all.Candidates) {
		t.Fatalf("state filter returned %d of %d", len(wa.Candidates), len(all.Candidates))
	}
	for _, c := range wa.Candidates {
		if c.State != "WA" {
			t.Fatalf("state filter leaked %s (%s)", c.ID, c.State)
		}
	}

	limited, err := repo.Candidates(context.Background(), Filter{Limit: 3})
	if err != nil {
		t.Fatalf("Candidates(limit): %v", err)
	}
	if len(limited.Candidates) != 3 {
		t.Fatalf("limit returned %d, want 3", len(limited.Candidates))
	}
}

func TestMemoryRepo_SearchByName(t *testing.T) {
	repo := NewMemoryRepo()

	set, err := repo.SearchByName(context.Background(), "WASHINGTON", 0)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(set.Candidates) == 0 {
		t.Fatal("expected case-insensitive hits")
	}

	empty, err := repo.SearchByName(context.Background(), "   ", 0)
	if err != nil {
		t.Fatalf("SearchByName(blank): %v", err)
	}
	if len(empty.Candidates) != 0 {
		t.Fatalf("blank query returned %d candidates", len(empty.Candidates))
	}
}

func TestMemoryRepo_GetByID(t *testing.T) {
	repo := NewMemoryRepo()

	if _, err := repo.GetByID(context.Background(), "uf"); err != nil {
		t.Fatalf("GetByID(uf): %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepo_Upsert(t *testing.T) {
	repo := NewMemoryRepoWith(nil)
	c := Candidate{ID: "new", Name: "New College", State: "FL"}
	if err := repo.Upsert(context.Background(), c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := repo.GetByID(context.Background(), "new")
	if err != nil {
		t.Fatalf("GetByID after upsert: %v", err)
	}
	if got.Name != "New College" {
		t.Fatalf("name = %q", got.Name)
	}
}
