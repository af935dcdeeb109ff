package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "gatorguide-backend/internal/auth"
	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/profiles"
	"gatorguide-backend/internal/recommend"
	"gatorguide-backend/internal/shared/config"
	"gatorguide-backend/internal/shared/metrics"
	"gatorguide-backend/internal/shared/server/middleware"
	"gatorguide-backend/internal/shared/server/respond"
	"gatorguide-backend/internal/transcripts"
)

// RouterDeps carries the handlers the router registers. Wiring happens in
// bootstrap; the router only attaches middleware and routes.
type RouterDeps struct {
	Config            config.Config
	ProfileHandler    *profiles.Handler
	CollegeHandler    *colleges.Handler
	RecommendHandler  *recommend.Handler
	TranscriptHandler *transcripts.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimits()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	deps.ProfileHandler.RegisterRoutes(api)
	deps.CollegeHandler.RegisterRoutes(api)
	deps.RecommendHandler.RegisterRoutes(api)
	deps.TranscriptHandler.RegisterRoutes(api)

	return r
}

// rateLimits throttles the expensive endpoints per principal: the
// recommendation pipeline fans out to the model API and transcript uploads
// hit storage plus PDF extraction.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"recommend": {Rate: 1, Burst: 5},
			"upload":    {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			switch {
			case strings.HasSuffix(c.FullPath(), "/recommendations"):
				return "recommend"
			case strings.HasSuffix(c.FullPath(), "/transcripts"):
				return "upload"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
