package transcripts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gatorguide-backend/internal/shared/server/middleware"
	"gatorguide-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the transcripts service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches transcript routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transcripts", h.upload)
	rg.GET("/transcripts", h.list)
	rg.GET("/transcripts/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	tr, err := h.Svc.Upload(c.Request.Context(), userID, middleware.IsGuest(c), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload transcript", nil)
		}
		return
	}

	c.Set("transcriptId", tr.ID)
	respond.JSON(c, http.StatusCreated, toResponse(tr))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "transcript id is required", nil)
		return
	}

	tr, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "transcript not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch transcript", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(tr))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	trs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list transcripts", nil)
		return
	}

	resp := make([]gin.H, 0, len(trs))
	for _, tr := range trs {
		resp = append(resp, toResponse(tr))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func toResponse(tr Transcript) gin.H {
	resp := gin.H{
		"transcriptId": tr.ID,
		"fileName":     tr.FileName,
		"mimeType":     tr.MimeType,
		"sizeBytes":    tr.SizeBytes,
		"uploadedAt":   tr.CreatedAt,
	}
	if tr.DetectedGPA != "" {
		resp["detectedGpa"] = tr.DetectedGPA
	}
	return resp
}
