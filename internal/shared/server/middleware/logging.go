package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skillpath-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	TargetRoleKey = "targetRole"
	ReportIDKey   = "reportId"
	SkillCountKey = "skillCount"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		targetRole, _ := c.Get(TargetRoleKey)
		reportID, _ := c.Get(ReportIDKey)
		skillCount, _ := c.Get(SkillCountKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"target_role": targetRole,
			"report_id":   reportID,
			"skill_count": skillCount,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
