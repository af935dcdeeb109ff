package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	answers, err := json.Marshal(profile.Answers)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO profiles (user_id, email, name, major, gpa, state, guest, answers, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  major = EXCLUDED.major,
  gpa = EXCLUDED.gpa,
  state = EXCLUDED.state,
  guest = EXCLUDED.guest,
  answers = EXCLUDED.answers,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		profile.UserID,
		nullableString(profile.Email),
		nullableString(profile.Name),
		nullableString(profile.Major),
		nullableString(profile.GPA),
		nullableString(profile.State),
		profile.Guest,
		answers,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, email, name, major, gpa, state, guest, answers, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	var email, name, major, gpa, state sql.NullString
	var answers []byte
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&email,
		&name,
		&major,
		&gpa,
		&state,
		&p.Guest,
		&answers,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if email.Valid {
		p.Email = email.String
	}
	if name.Valid {
		p.Name = name.String
	}
	if major.Valid {
		p.Major = major.String
	}
	if gpa.Valid {
		p.GPA = gpa.String
	}
	if state.Valid {
		p.State = state.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	} else {
		p.UpdatedAt = time.Now().UTC()
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &p.Answers); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
