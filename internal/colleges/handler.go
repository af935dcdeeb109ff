package colleges

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gatorguide-backend/internal/shared/server/respond"
)

const maxBrowseLimit = 50

// Handler wires HTTP handlers to the college catalog.
type Handler struct {
	Provider Provider
}

// NewHandler constructs a Handler.
func NewHandler(provider Provider) *Handler {
	return &Handler{Provider: provider}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/colleges", h.browse)
	rg.GET("/colleges/:id", h.detail)
	rg.POST("/colleges/cost-estimate", h.costEstimate)
}

func (h *Handler) browse(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxBrowseLimit {
		limit = maxBrowseLimit
	}

	q := strings.TrimSpace(c.Query("q"))
	var set CandidateSet
	var err error
	if q != "" {
		set, err = h.Provider.SearchByName(c.Request.Context(), q, limit)
	} else {
		set, err = h.Provider.Candidates(c.Request.Context(), Filter{
			State: strings.TrimSpace(c.Query("state")),
			Limit: limit,
		})
	}
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to load colleges", nil)
		return
	}

	candidates := set.Candidates
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"colleges": candidates,
		"source":   set.Source,
	})
}

func (h *Handler) detail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "college id is required", nil)
		return
	}
	college, err := h.Provider.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "college not found", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to load college", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, college)
}

type costEstimateRequest struct {
	CollegeID string `json:"collegeId"`
	Housing   string `json:"housing"`
}

func (h *Handler) costEstimate(c *gin.Context) {
	var req costEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.CollegeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "collegeId is required", []map[string]string{
			{"field": "collegeId", "issue": "required"},
		})
		return
	}

	college, err := h.Provider.GetByID(c.Request.Context(), req.CollegeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "college not found", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to load college", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"college":  gin.H{"id": college.ID, "name": college.Name},
		"estimate": EstimateCost(college, req.Housing),
	})
}
