package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func scanGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/candidates" {
		return "SCAN"
	}
	return "DEFAULT"
}

func TestRateLimitScanTighterThanDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "google:test-recruiter")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     scanGroupFor,
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 5},
			"SCAN":    {Rate: 1, Burst: 2},
		},
	}))

	r.POST("/api/v1/candidates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/candidates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("scan request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("scan request 3 expected 429, got %d", resp.Code)
	}

	// Reads draw from the roomier default bucket.
	for i := 0; i < 5; i++ {
		reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/candidates", nil)
		respGet := httptest.NewRecorder()
		r.ServeHTTP(respGet, reqGet)
		if respGet.Code != http.StatusOK {
			t.Fatalf("read request %d expected 200, got %d", i+1, respGet.Code)
		}
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "google:test-recruiter")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: scanGroupFor,
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			"SCAN": {Rate: 0.5, Burst: 1},
		},
	}))
	r.POST("/api/v1/candidates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				RetryAfterMs int `json:"retryAfterMs"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", body.Error.Code)
	}
	if body.Error.Details.RetryAfterMs <= 0 {
		t.Fatalf("expected positive retryAfterMs, got %d", body.Error.Details.RetryAfterMs)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("user|SCAN", rule); !ok {
		t.Fatalf("expected first token")
	}
	if ok, retry := limiter.Allow("user|SCAN", rule); ok || retry <= 0 {
		t.Fatalf("expected empty bucket with retry hint, got ok=%v retry=%v", ok, retry)
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("user|SCAN", rule); !ok {
		t.Fatalf("expected bucket refilled after wait")
	}
}
