package colleges

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const pgSource = "catalog-db"

// PGRepo serves candidates from the Postgres catalog cache.
type PGRepo struct {
	DB *sql.DB
}

const collegeColumns = `id, name, city, state, tuition, size_category, setting_category,
admission_rate, completion_rate, pell_rate, median_debt, programs, ownership, updated_at`

func (r *PGRepo) Candidates(ctx context.Context, f Filter) (CandidateSet, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 200
	}

	var rows *sql.Rows
	var err error
	if strings.TrimSpace(f.State) != "" {
		query := `SELECT ` + collegeColumns + ` FROM colleges WHERE state = $1 ORDER BY name LIMIT $2`
		rows, err = r.DB.QueryContext(ctx, query, strings.ToUpper(strings.TrimSpace(f.State)), limit)
	} else {
		query := `SELECT ` + collegeColumns + ` FROM colleges ORDER BY name LIMIT $1`
		rows, err = r.DB.QueryContext(ctx, query, limit)
	}
	if err != nil {
		return CandidateSet{}, err
	}
	defer rows.Close()

	out, err := scanCandidates(rows)
	if err != nil {
		return CandidateSet{}, err
	}
	return CandidateSet{Candidates: out, Source: pgSource}, nil
}

func (r *PGRepo) SearchByName(ctx context.Context, q string, limit int) (CandidateSet, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, strings.TrimSpace(q), limit)
	if err != nil {
		return CandidateSet{}, err
	}
	defer rows.Close()

	out, err := scanCandidates(rows)
	if err != nil {
		return CandidateSet{}, err
	}
	return CandidateSet{Candidates: out, Source: pgSource}, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

// Upsert inserts or refreshes one catalog row. Used by the seeding tool and
// the cache refresh path.
func (r *PGRepo) Upsert(ctx context.Context, c Candidate) error {
	programs, err := json.Marshal(c.Programs)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO colleges (id, name, city, state, tuition, size_category, setting_category,
  admission_rate, completion_rate, pell_rate, median_debt, programs, ownership, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  city = EXCLUDED.city,
  state = EXCLUDED.state,
  tuition = EXCLUDED.tuition,
  size_category = EXCLUDED.size_category,
  setting_category = EXCLUDED.setting_category,
  admission_rate = EXCLUDED.admission_rate,
  completion_rate = EXCLUDED.completion_rate,
  pell_rate = EXCLUDED.pell_rate,
  median_debt = EXCLUDED.median_debt,
  programs = EXCLUDED.programs,
  ownership = EXCLUDED.ownership,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.City,
		strings.ToUpper(strings.TrimSpace(c.State)),
		nullableFloat(c.Tuition),
		c.Size,
		c.Setting,
		nullableFloat(c.AdmissionRate),
		nullableFloat(c.CompletionRate),
		nullableFloat(c.PellRate),
		nullableFloat(c.MedianDebt),
		programs,
		nullableString(c.Ownership),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidates(rows *sql.Rows) ([]Candidate, error) {
	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCandidate(row rowScanner) (Candidate, error) {
	var c Candidate
	var tuition, admission, completion, pell, debt sql.NullFloat64
	var ownership sql.NullString
	var programs []byte
	var updatedAt sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.City,
		&c.State,
		&tuition,
		&c.Size,
		&c.Setting,
		&admission,
		&completion,
		&pell,
		&debt,
		&programs,
		&ownership,
		&updatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}
	c.Tuition = floatPtr(tuition)
	c.AdmissionRate = floatPtr(admission)
	c.CompletionRate = floatPtr(completion)
	c.PellRate = floatPtr(pell)
	c.MedianDebt = floatPtr(debt)
	if ownership.Valid {
		c.Ownership = ownership.String
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	} else {
		c.UpdatedAt = time.Now().UTC()
	}
	if len(programs) > 0 {
		if err := json.Unmarshal(programs, &c.Programs); err != nil {
			return Candidate{}, err
		}
	}
	if c.Programs == nil {
		c.Programs = []string{}
	}
	return c, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
