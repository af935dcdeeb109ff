package profiles

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Service contains business logic for profiles.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns the profile for a user, or an empty profile for users who have
// not saved one yet (guests included).
func (s *Service) Get(ctx context.Context, userID string, guest bool) (Profile, error) {
	if userID == "" {
		return Profile{}, errors.New("userID is required")
	}
	profile, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{UserID: userID, Guest: guest}, nil
		}
		return Profile{}, err
	}
	profile.Guest = guest
	return profile, nil
}

// Save validates and persists a profile update.
func (s *Service) Save(ctx context.Context, profile Profile) (Profile, error) {
	if profile.UserID == "" {
		return Profile{}, errors.New("userID is required")
	}
	profile.Major = strings.TrimSpace(profile.Major)
	profile.State = strings.TrimSpace(profile.State)
	profile.GPA = strings.TrimSpace(profile.GPA)

	if profile.GPA != "" {
		if v, err := strconv.ParseFloat(profile.GPA, 64); err != nil || v < 0 || v > 4 {
			return Profile{}, ErrInvalidGPA
		}
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetByUser(ctx, profile.UserID)
}

// EnsureUser records identity fields after a successful sign-in without
// clobbering any transfer data the user already saved.
func (s *Service) EnsureUser(ctx context.Context, userID, email, name string) error {
	if userID == "" {
		return errors.New("userID is required")
	}
	existing, err := s.Repo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	existing.UserID = userID
	existing.Email = email
	existing.Name = name
	existing.Guest = false
	return s.Repo.Upsert(ctx, existing)
}

// ErrInvalidGPA rejects GPA strings outside the 0-4 scale at save time.
// The engine itself is more forgiving and treats bad GPAs as absent.
var ErrInvalidGPA = errors.New("gpa must be a number between 0 and 4")
