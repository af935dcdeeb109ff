package recommend

import (
	"context"
	"time"
)

type errNotFound struct{}

func (errNotFound) Error() string { return "recommendation run not found" }

// ErrNotFound is returned when a recommendation run does not exist.
var ErrNotFound error = errNotFound{}

// Run is one persisted recommendation invocation for a signed-in user.
type Run struct {
	ID          string             `json:"id"`
	UserID      string             `json:"-"`
	Mode        string             `json:"mode"`
	Query       string             `json:"query,omitempty"`
	ResultCount int                `json:"resultCount"`
	EmptyCode   string             `json:"emptyCode,omitempty"`
	Top         []DiagnosticResult `json:"top,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// HistoryRepo persists recommendation runs.
type HistoryRepo interface {
	Create(ctx context.Context, run Run) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Run, error)
}
