package recommend

import (
	"testing"

	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/profiles"
)

func fp(v float64) *float64 { return &v }

func flagshipCandidate() colleges.Candidate {
	return colleges.Candidate{
		ID:             "flagship",
		Name:           "State Flagship University",
		City:           "Seattle",
		State:          "WA",
		Tuition:        fp(12000),
		Size:           colleges.SizeLarge,
		Setting:        colleges.SettingUrban,
		AdmissionRate:  fp(0.48),
		CompletionRate: fp(0.84),
		PellRate:       fp(0.25),
		MedianDebt:     fp(18000),
		Programs:       []string{"Computer Science", "Biology"},
		Ownership:      colleges.OwnershipPublic,
	}
}

func TestScoreCandidate_Breakdown(t *testing.T) {
	profile := &profiles.Profile{Major: "Computer Science", GPA: "3.8", State: "WA"}
	q := NormalizeAnswers(map[string]string{
		"in_state_out_of_state": "in_state",
		"class_size":            "large",
		"campus_setting":        "urban",
	})
	w := WeightSet{Academics: 45, Cost: 25, Location: 15, Prestige: 5, Size: 5, Setting: 5}

	b := ScoreCandidate(flagshipCandidate(), w, profile, &q, nil)

	// 50 base +30 major +19 gpa +15 in-state public +17 completion, clamped.
	if b.Academics != 100 {
		t.Fatalf("academics = %d, want 100", b.Academics)
	}
	if b.Cost != 80 {
		t.Fatalf("cost = %d, want 80", b.Cost)
	}
	if b.Location != 75 {
		t.Fatalf("location = %d, want 75", b.Location)
	}
	if b.Prestige != 52 {
		t.Fatalf("prestige = %d, want 52", b.Prestige)
	}
	if b.Size != 100 || b.Setting != 100 {
		t.Fatalf("size/setting = %d/%d, want 100/100", b.Size, b.Setting)
	}
	if b.Aid != 25 {
		t.Fatalf("aid = %d, want 25", b.Aid)
	}
	if b.Debt != 64 {
		t.Fatalf("debt = %d, want 64", b.Debt)
	}
	if b.AIFit != 0 {
		t.Fatalf("aiFit = %d, want 0 when unsupplied and unweighted", b.AIFit)
	}
	if b.Final != 89 {
		t.Fatalf("final = %d, want 89", b.Final)
	}
}

func TestScoreCandidate_MissingDataStaysNeutral(t *testing.T) {
	c := colleges.Candidate{ID: "sparse", Name: "Sparse College", State: "KY"}
	w := normalizeWeights(WeightSet{})

	b := ScoreCandidate(c, w, nil, nil, nil)

	if b.Cost != 50 || b.Aid != 50 || b.Debt != 50 || b.Prestige != 50 {
		t.Fatalf("missing-data dims should be neutral 50, got %+v", b)
	}
	if b.Academics != 50 {
		t.Fatalf("academics without profile = %d, want 50", b.Academics)
	}
	if b.Size != 50 || b.Setting != 50 || b.Location != 50 {
		t.Fatalf("preference dims without questionnaire should be 50, got %+v", b)
	}
}

func TestScoreCandidate_DeclaredMajorMissPenalized(t *testing.T) {
	c := colleges.Candidate{ID: "arts", Name: "Arts College", Programs: []string{"Theology"}}
	profile := &profiles.Profile{Major: "Computer Science"}
	w := WeightSet{Academics: 100}

	b := ScoreCandidate(c, w, profile, nil, nil)
	if b.Academics != 10 {
		t.Fatalf("academics with major miss = %d, want 10", b.Academics)
	}
	if b.Final != 10 {
		t.Fatalf("final = %d, want 10", b.Final)
	}
}

func TestScoreCandidate_AIFitHandling(t *testing.T) {
	c := flagshipCandidate()
	w := WeightSet{Academics: 80, AIFit: 20}

	unsupplied := ScoreCandidate(c, w, nil, nil, nil)
	if unsupplied.AIFit != 50 {
		t.Fatalf("unsupplied aiFit with nonzero weight = %d, want neutral 50", unsupplied.AIFit)
	}

	over := 120
	clamped := ScoreCandidate(c, w, nil, nil, &over)
	if clamped.AIFit != 100 {
		t.Fatalf("out-of-range aiFit = %d, want clamped 100", clamped.AIFit)
	}
}

func TestScoreCandidate_AllDimensionsInRange(t *testing.T) {
	profile := &profiles.Profile{Major: "Computer Science", GPA: "3.2", State: "FL"}
	q := NormalizeAnswers(map[string]string{
		"cost_of_attendance":    "under_20k",
		"in_state_out_of_state": "in_state",
		"class_size":            "medium",
		"campus_setting":        "suburban",
	})
	w := BuildWeights(profile, &q, "")

	for _, c := range colleges.FixtureSet() {
		b := ScoreCandidate(c, w, profile, &q, nil)
		for name, v := range map[string]int{
			"academics": b.Academics, "cost": b.Cost, "location": b.Location,
			"prestige": b.Prestige, "size": b.Size, "setting": b.Setting,
			"aid": b.Aid, "debt": b.Debt, "aiFit": b.AIFit, "final": b.Final,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s: %s = %d, out of [0,100]", c.ID, name, v)
			}
		}
	}
}

func TestScoreCandidate_Deterministic(t *testing.T) {
	profile := &profiles.Profile{Major: "Computer Science", GPA: "3.8", State: "WA"}
	q := NormalizeAnswers(map[string]string{"in_state_out_of_state": "in_state"})
	w := BuildWeights(profile, &q, "")

	c := flagshipCandidate()
	first := ScoreCandidate(c, w, profile, &q, nil)
	second := ScoreCandidate(c, w, profile, &q, nil)
	if first != second {
		t.Fatalf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}

func TestPrestigeScore_PercentFormNormalized(t *testing.T) {
	fraction := prestigeScore(fp(0.25))
	percent := prestigeScore(fp(25))
	if fraction != percent {
		t.Fatalf("0.25 scored %d but 25 scored %d; forms should agree", fraction, percent)
	}
	if fraction != 75 {
		t.Fatalf("prestige for 25%% admission = %d, want 75", fraction)
	}
}

func TestCostScore_CapsAtScale(t *testing.T) {
	if got := costScore(fp(90000)); got != 0 {
		t.Fatalf("tuition above cap = %d, want 0", got)
	}
	if got := costScore(fp(0)); got != 100 {
		t.Fatalf("free tuition = %d, want 100", got)
	}
	if got := costScore(fp(6381)); got != 89 {
		t.Fatalf("tuition 6381 = %d, want 89", got)
	}
}
