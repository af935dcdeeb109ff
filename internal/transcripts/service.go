package transcripts

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatorguide-backend/internal/extract"
	"gatorguide-backend/internal/profiles"
	"gatorguide-backend/internal/shared/metrics"
	"gatorguide-backend/internal/shared/storage/object"
	"gatorguide-backend/internal/shared/telemetry"
)

// Service contains business logic for transcripts: store the PDF, extract
// its text, detect a GPA, and push the detected GPA onto the profile.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Profiles *profiles.Service
}

// Upload saves the transcript, runs extraction, and records the result.
// Extraction or GPA-detection failure does not fail the upload; the
// transcript is kept without a detected GPA.
func (s *Service) Upload(ctx context.Context, userID string, guest bool, fileName string, r io.Reader) (Transcript, error) {
	if strings.TrimSpace(fileName) == "" {
		return Transcript{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Transcript{}, err
	}

	tr := Transcript{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	text, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType)
	if err != nil {
		telemetry.Error("transcript extraction failed", map[string]any{
			"user_id": userID,
			"key":     storageKey,
			"error":   err.Error(),
		})
	} else {
		tr.ExtractedTextKey = storageKey + ".extracted.txt"
		if gpa, ok := DetectGPA(text); ok {
			tr.DetectedGPA = gpa
			s.updateProfileGPA(ctx, userID, guest, gpa)
		}
	}

	if err := s.Repo.Create(ctx, tr); err != nil {
		return Transcript{}, err
	}
	metrics.IncTranscriptUploaded()
	return tr, nil
}

// Get returns a transcript owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (Transcript, error) {
	if id == "" {
		return Transcript{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's transcripts, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Transcript, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// updateProfileGPA writes the detected GPA onto the profile unless the
// user already entered one by hand.
func (s *Service) updateProfileGPA(ctx context.Context, userID string, guest bool, gpa string) {
	profile, err := s.Profiles.Get(ctx, userID, guest)
	if err != nil {
		telemetry.Error("transcript profile load failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	if strings.TrimSpace(profile.GPA) != "" {
		return
	}
	profile.GPA = gpa
	if _, err := s.Profiles.Save(ctx, profile); err != nil {
		telemetry.Error("transcript profile gpa update failed", map[string]any{"user_id": userID, "error": err.Error()})
	}
}
