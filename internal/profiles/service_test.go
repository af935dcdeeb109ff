package profiles

import (
	"context"
	"errors"
	"testing"
)

func TestServiceGetReturnsEmptyProfileForNewUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	p, err := svc.Get(context.Background(), "guest:abc", true)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.UserID != "guest:abc" || !p.Guest {
		t.Fatalf("profile = %+v, want empty guest profile", p)
	}
	if p.Major != "" || p.GPA != "" || p.State != "" {
		t.Fatalf("new profile should be empty, got %+v", p)
	}
}

func TestServiceGetRequiresUserID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Get(context.Background(), "", false); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestServiceSaveValidatesGPA(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	tests := []struct {
		name    string
		gpa     string
		wantErr bool
	}{
		{name: "valid", gpa: "3.72"},
		{name: "empty allowed", gpa: ""},
		{name: "trimmed", gpa: " 3.5 "},
		{name: "too high", gpa: "4.5", wantErr: true},
		{name: "negative", gpa: "-1", wantErr: true},
		{name: "not a number", gpa: "three point five", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), Profile{UserID: "u1", GPA: tt.gpa})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGPA) {
					t.Fatalf("err = %v, want ErrInvalidGPA", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
		})
	}
}

func TestServiceSaveTrimsFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	saved, err := svc.Save(context.Background(), Profile{
		UserID: "u1",
		Major:  "  Computer Science ",
		State:  " WA ",
		GPA:    " 3.8 ",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Major != "Computer Science" || saved.State != "WA" || saved.GPA != "3.8" {
		t.Fatalf("fields not trimmed: %+v", saved)
	}
}

func TestServiceEnsureUserPreservesTransferData(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if _, err := svc.Save(context.Background(), Profile{
		UserID: "google:123",
		Major:  "Computer Science",
		GPA:    "3.8",
		State:  "WA",
		Answers: map[string]string{
			"in_state_out_of_state": "in_state",
		},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.EnsureUser(context.Background(), "google:123", "s@example.edu", "Sam"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	p, err := svc.Get(context.Background(), "google:123", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Email != "s@example.edu" || p.Name != "Sam" {
		t.Fatalf("identity not recorded: %+v", p)
	}
	if p.Major != "Computer Science" || p.GPA != "3.8" || p.State != "WA" {
		t.Fatalf("transfer data clobbered: %+v", p)
	}
	if p.Answers["in_state_out_of_state"] != "in_state" {
		t.Fatalf("answers clobbered: %+v", p.Answers)
	}
}

func TestServiceEnsureUserCreatesMissingProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.EnsureUser(context.Background(), "google:456", "new@example.edu", "New"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	p, err := svc.Get(context.Background(), "google:456", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Email != "new@example.edu" {
		t.Fatalf("profile = %+v", p)
	}
}
