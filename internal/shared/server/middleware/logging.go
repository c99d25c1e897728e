package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chaudhari-piyush/talentlens/internal/shared/telemetry"
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
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get(userIDKey)
		jobID, _ := c.Get("jobId")
		candidateID, _ := c.Get("candidateId")
		scanStatus := ""
		if raw, ok := c.Get("scanStatus"); ok {
			if s, ok := raw.(string); ok {
				scanStatus = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":   reqID,
			"method":       c.Request.Method,
			"path":         c.Request.URL.Path,
			"status":       status,
			"scan_status":  scanStatus,
			"duration_ms":  float64(latency.Microseconds()) / 1000.0,
			"user_id":      userID,
			"job_id":       jobID,
			"candidate_id": candidateID,
			"client_ip":    c.ClientIP(),
			"user_agent":   c.Request.UserAgent(),
		})
	}
}
