package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "github.com/chaudhari-piyush/talentlens/internal/auth"
	"github.com/chaudhari-piyush/talentlens/internal/candidates"
	"github.com/chaudhari-piyush/talentlens/internal/jobs"
	"github.com/chaudhari-piyush/talentlens/internal/shared/config"
	"github.com/chaudhari-piyush/talentlens/internal/shared/metrics"
	"github.com/chaudhari-piyush/talentlens/internal/shared/server/middleware"
	"github.com/chaudhari-piyush/talentlens/internal/shared/server/respond"
	"github.com/chaudhari-piyush/talentlens/internal/users"
)

// RouterDeps carries everything the router needs. Handlers are built by
// bootstrap so tests can wire their own.
type RouterDeps struct {
	Config           config.Config
	UserHandler      *users.Handler
	JobHandler       *jobs.Handler
	CandidateHandler *candidates.Handler
	GoogleAuth       *googleauth.GoogleService
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
		middleware.Auth(),
		middleware.RateLimit(scanRateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.CandidateHandler != nil {
		deps.CandidateHandler.RegisterRoutes(api)
	}

	return r
}

// scanRateLimits throttles the endpoints that kick off a resume scan much
// harder than ordinary CRUD: every hit costs an LLM round trip and a PDF
// render.
func scanRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				switch c.FullPath() {
				case "/api/v1/candidates", "/api/v1/candidates/:id/rescan":
					return "SCAN"
				}
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 20, Burst: 60},
			"SCAN":    {Rate: 0.5, Burst: 10},
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
