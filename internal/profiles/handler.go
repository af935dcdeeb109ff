package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatorguide-backend/internal/shared/server/middleware"
	"gatorguide-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profiles service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.putProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.Get(c.Request.Context(), userID, middleware.IsGuest(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	respond.OK(c, profile)
}

type putProfileRequest struct {
	Major   string            `json:"major"`
	GPA     string            `json:"gpa"`
	State   string            `json:"state"`
	Answers map[string]string `json:"answers"`
}

func (h *Handler) putProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile payload", nil)
		return
	}

	profile := Profile{
		UserID:  userID,
		Major:   req.Major,
		GPA:     req.GPA,
		State:   req.State,
		Guest:   middleware.IsGuest(c),
		Answers: req.Answers,
	}

	saved, err := h.Svc.Save(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidGPA):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), []map[string]string{
				{"field": "gpa", "issue": "out_of_range"},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		}
		return
	}
	respond.OK(c, saved)
}
