package profiles

import "time"

// Profile is the transfer-planning profile for one user. GPA is kept as the
// raw string the client submitted; the recommendation engine parses and
// validates it on use (a bad GPA is "no GPA", never an error).
type Profile struct {
	UserID    string            `json:"userId"`
	Email     string            `json:"email,omitempty"`
	Name      string            `json:"name,omitempty"`
	Major     string            `json:"major,omitempty"`
	GPA       string            `json:"gpa,omitempty"`
	State     string            `json:"state,omitempty"`
	Guest     bool              `json:"guest"`
	Answers   map[string]string `json:"answers,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
