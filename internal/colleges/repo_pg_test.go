package colleges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var collegeRowColumns = []string{
	"id", "name", "city", "state", "tuition", "size_category", "setting_category",
	"admission_rate", "completion_rate", "pell_rate", "median_debt", "programs",
	"ownership", "updated_at",
}

func TestPGRepoCandidatesFiltersByState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(collegeRowColumns).
		AddRow("uf", "University of Florida", "Gainesville", "FL",
			6381.0, "large", "suburban", 0.23, 0.87, 0.28, 17500.0,
			[]byte(`["Computer Science","Biology"]`), "public", time.Now().UTC()).
		AddRow("sparse", "Sparse College", "Orlando", "FL",
			nil, "unknown", "unknown", nil, nil, nil, nil,
			nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM colleges WHERE state = \\$1").
		WithArgs("FL", 25).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	set, err := repo.Candidates(context.Background(), Filter{State: "fl", Limit: 25})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if set.Source != pgSource {
		t.Fatalf("source = %q, want %q", set.Source, pgSource)
	}
	if len(set.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(set.Candidates))
	}

	uf := set.Candidates[0]
	if uf.Tuition == nil || *uf.Tuition != 6381 {
		t.Fatalf("tuition = %v, want 6381", uf.Tuition)
	}
	if len(uf.Programs) != 2 {
		t.Fatalf("programs = %v", uf.Programs)
	}

	sparse := set.Candidates[1]
	if sparse.Tuition != nil || sparse.AdmissionRate != nil || sparse.MedianDebt != nil {
		t.Fatalf("null columns should map to nil pointers: %+v", sparse)
	}
	if sparse.Programs == nil || len(sparse.Programs) != 0 {
		t.Fatalf("null programs should map to an empty slice, got %v", sparse.Programs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSearchByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(collegeRowColumns).
		AddRow("uw", "University of Washington", "Seattle", "WA",
			12242.0, "large", "urban", 0.48, 0.84, 0.22, 16500.0,
			[]byte(`["Computer Science"]`), "public", time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM colleges WHERE name ILIKE").
		WithArgs("washington", 50).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	set, err := repo.SearchByName(context.Background(), "washington", 0)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(set.Candidates) != 1 || set.Candidates[0].ID != "uw" {
		t.Fatalf("candidates = %+v", set.Candidates)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM colleges WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(collegeRowColumns))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	c := Candidate{
		ID:        "uf",
		Name:      "University of Florida",
		City:      "Gainesville",
		State:     "fl",
		Tuition:   f(6381),
		Size:      SizeLarge,
		Setting:   SettingSuburban,
		Programs:  []string{"Computer Science"},
		Ownership: OwnershipPublic,
	}

	mock.ExpectExec("INSERT INTO colleges").
		WithArgs(
			c.ID,
			c.Name,
			c.City,
			"FL", // state uppercased on write
			6381.0,
			c.Size,
			c.Setting,
			nil,
			nil,
			nil,
			nil,
			[]byte(`["Computer Science"]`),
			c.Ownership,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
