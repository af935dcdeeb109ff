package transcripts

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a transcript does not exist for the user.
var ErrNotFound = errors.New("transcript not found")

// ErrInvalidInput is returned for malformed upload requests.
var ErrInvalidInput = errors.New("invalid input")

// Repo defines persistence operations for transcripts.
type Repo interface {
	Create(ctx context.Context, tr Transcript) error
	GetByID(ctx context.Context, userID, id string) (Transcript, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transcript, error)
}
