package transcripts

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new transcript.
func (r *PGRepo) Create(ctx context.Context, tr Transcript) error {
	const query = `
INSERT INTO transcripts (id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, detected_gpa, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var extractedKey, gpa sql.NullString
	if tr.ExtractedTextKey != "" {
		extractedKey = sql.NullString{String: tr.ExtractedTextKey, Valid: true}
	}
	if tr.DetectedGPA != "" {
		gpa = sql.NullString{String: tr.DetectedGPA, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		tr.ID,
		tr.UserID,
		tr.FileName,
		tr.MimeType,
		tr.SizeBytes,
		tr.StorageKey,
		extractedKey,
		gpa,
		tr.CreatedAt,
	)
	return err
}

// GetByID returns a transcript owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Transcript, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, detected_gpa, created_at
FROM transcripts
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id, userID)
	tr, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Transcript{}, ErrNotFound
	}
	return tr, err
}

// ListByUser returns a user's transcripts, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transcript, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, detected_gpa, created_at
FROM transcripts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transcript, 0)
	for rows.Next() {
		tr, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscript(row rowScanner) (Transcript, error) {
	var tr Transcript
	var extractedKey, gpa sql.NullString
	err := row.Scan(
		&tr.ID,
		&tr.UserID,
		&tr.FileName,
		&tr.MimeType,
		&tr.SizeBytes,
		&tr.StorageKey,
		&extractedKey,
		&gpa,
		&tr.CreatedAt,
	)
	if err != nil {
		return Transcript{}, err
	}
	tr.ExtractedTextKey = extractedKey.String
	tr.DetectedGPA = gpa.String
	return tr, nil
}
