package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"skillpath-backend/internal/advisor"
	"skillpath-backend/internal/services/health"
	"skillpath-backend/internal/shared/config"
	"skillpath-backend/internal/shared/metrics"
	"skillpath-backend/internal/shared/server/middleware"
	"skillpath-backend/internal/shared/server/respond"
)

const (
	rateLimitDefault = "DEFAULT"
	rateLimitAnalyze = "ANALYZE"
	rateLimitNone    = "UNLIMITED"
)

// RouterDeps carries the handlers registered on the engine.
type RouterDeps struct {
	Config         config.Config
	AdvisorHandler *advisor.Handler
	Health         *health.Service
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		metrics.Middleware(),
	)
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middleware.RateLimit(rateLimitConfig(cfg, deps.RateLimiter)))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	if deps.AdvisorHandler != nil {
		deps.AdvisorHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// rateLimitConfig gives the combined analysis endpoint half the default rate.
// Groups without a rule, such as the metrics scrape, are not limited.
func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	analyzeBurst := cfg.RateLimitBurst / 2
	if analyzeBurst < 1 {
		analyzeBurst = 1
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateLimitDefault: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			rateLimitAnalyze: {Rate: cfg.RateLimitRPS / 2, Burst: analyzeBurst},
		},
		DefaultGroup: rateLimitDefault,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyze" {
				return rateLimitAnalyze
			}
			if c.FullPath() == "/metrics" {
				return rateLimitNone
			}
			return rateLimitDefault
		},
		Limiter: limiter,
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
