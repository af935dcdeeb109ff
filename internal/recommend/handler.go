package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gatorguide-backend/internal/shared/server/middleware"
	"gatorguide-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.GET("/recommendations/history", h.history)
	rg.POST("/colleges/compare", h.compare)
}

type compareRequest struct {
	IDs     []string          `json:"ids"`
	Answers map[string]string `json:"answers"`
}

func (h *Handler) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.IDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "ids is required", []map[string]string{
			{"field": "ids", "issue": "required"},
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	cmp, err := h.Svc.Compare(c.Request.Context(), userID, middleware.IsGuest(c), req.IDs, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooManyColleges):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compare colleges", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, cmp)
}

func (h *Handler) recommend(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.MaxResults < 0 || req.MaxResults > 50 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "maxResults must be between 0 and 50; 0 applies the default", []map[string]string{
			{"field": "maxResults", "issue": "out_of_range"},
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	resp, err := h.Svc.Recommend(c.Request.Context(), userID, middleware.IsGuest(c), req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build recommendations", nil)
		return
	}
	if resp.EmptyState != nil {
		c.Set("emptyStateCode", resp.EmptyState.Code)
	}
	if resp.Diagnostics != nil && resp.Diagnostics.RunID != "" {
		c.Set("recommendationRunId", resp.Diagnostics.RunID)
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) history(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	runs, err := h.Svc.HistoryForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"runs": runs})
}
