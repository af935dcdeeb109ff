package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gatorguide-backend/internal/profiles"
	"gatorguide-backend/internal/shared/metrics"
	"gatorguide-backend/internal/shared/telemetry"
)

// Service runs the engine for a user and persists runs for signed-in
// users. History writes are best effort and never fail the request.
type Service struct {
	Engine   *Engine
	Profiles *profiles.Service
	History  HistoryRepo
}

// NewService constructs a Service.
func NewService(engine *Engine, profileSvc *profiles.Service, history HistoryRepo) *Service {
	return &Service{Engine: engine, Profiles: profileSvc, History: history}
}

// Recommend loads the caller's profile, merges stored questionnaire answers
// under any submitted with the request, runs the engine, and records the
// run.
func (s *Service) Recommend(ctx context.Context, userID string, guest bool, req Request) (Response, error) {
	metrics.IncRecommendationStarted()
	start := time.Now()

	profile, err := s.Profiles.Get(ctx, userID, guest)
	if err != nil {
		return Response{}, err
	}
	req.Answers = mergeAnswers(profile.Answers, req.Answers)

	resp, err := s.Engine.Recommend(ctx, &profile, req)
	if err != nil {
		return Response{}, err
	}

	metrics.ObserveRecommendationDurationMs(float64(time.Since(start).Milliseconds()))
	if resp.EmptyState != nil {
		metrics.IncRecommendationEmpty()
	} else {
		metrics.IncRecommendationCompleted()
	}

	if !guest && s.History != nil {
		runID := s.recordRun(ctx, userID, req, resp)
		if resp.Diagnostics != nil {
			resp.Diagnostics.RunID = runID
		}
	}
	return resp, nil
}

// Compare builds a side-by-side comparison of up to five colleges under
// the caller's derived weights.
func (s *Service) Compare(ctx context.Context, userID string, guest bool, ids []string, answers map[string]string) (Comparison, error) {
	profile, err := s.Profiles.Get(ctx, userID, guest)
	if err != nil {
		return Comparison{}, err
	}
	return s.Engine.Compare(ctx, &profile, ids, mergeAnswers(profile.Answers, answers))
}

// HistoryForUser lists a signed-in user's past runs, newest first.
func (s *Service) HistoryForUser(ctx context.Context, userID string, limit, offset int) ([]Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.History.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) recordRun(ctx context.Context, userID string, req Request, resp Response) string {
	run := Run{
		ID:          uuid.NewString(),
		UserID:      userID,
		Mode:        "weighted",
		Query:       req.Query,
		ResultCount: len(resp.Results),
		CreatedAt:   time.Now().UTC(),
	}
	if !req.IsWeighted() {
		run.Mode = "search"
	}
	if resp.EmptyState != nil {
		run.EmptyCode = resp.EmptyState.Code
	}
	if resp.Diagnostics != nil {
		run.Top = resp.Diagnostics.Top
	}
	if err := s.History.Create(ctx, run); err != nil {
		telemetry.Error("recommend history write failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return ""
	}
	return run.ID
}

// mergeAnswers overlays request answers on the stored profile answers so a
// request can tweak a single preference without resubmitting all of them.
func mergeAnswers(stored, submitted map[string]string) map[string]string {
	if len(stored) == 0 {
		return submitted
	}
	merged := make(map[string]string, len(stored)+len(submitted))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range submitted {
		merged[k] = v
	}
	return merged
}
