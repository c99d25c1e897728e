package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	scanStartedTotal   atomic.Uint64
	scanCompletedTotal atomic.Uint64
	scanFailedTotal    atomic.Uint64
	scoreFallbackTotal atomic.Uint64
	guideFallbackTotal atomic.Uint64

	scanDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncScanStarted increments the started counter.
func IncScanStarted() {
	scanStartedTotal.Add(1)
}

// IncScanCompleted increments the completed counter.
func IncScanCompleted() {
	scanCompletedTotal.Add(1)
}

// IncScanFailed increments the failed counter.
func IncScanFailed() {
	scanFailedTotal.Add(1)
}

// IncScoreFallback counts scoring runs that fell back to placeholder scores.
func IncScoreFallback() {
	scoreFallbackTotal.Add(1)
}

// IncGuideFallback counts generation runs that fell back to the default guide.
func IncGuideFallback() {
	guideFallbackTotal.Add(1)
}

// ObserveScanDurationMs records a full scan duration in milliseconds.
func ObserveScanDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scanDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "scan_started_total", "Total resume scans started", scanStartedTotal.Load())
	writeCounter(&buf, "scan_completed_total", "Total resume scans completed", scanCompletedTotal.Load())
	writeCounter(&buf, "scan_failed_total", "Total resume scans failed", scanFailedTotal.Load())
	writeCounter(&buf, "score_fallback_total", "Total scoring runs that used fallback scores", scoreFallbackTotal.Load())
	writeCounter(&buf, "guide_fallback_total", "Total generation runs that used the default guide", guideFallbackTotal.Load())
	writeHistogram(&buf, "scan_duration_ms", "Resume scan duration in milliseconds", scanDuration.Snapshot())
	return buf.String()
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	cumulative := uint64(0)
	for i, bound := range snap.bounds {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, formatBound(bound), cumulative)
	}
	cumulative += snap.counts[len(snap.bounds)]
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, cumulative)
	fmt.Fprintf(buf, "%s_sum %g\n", name, snap.sum)
	fmt.Fprintf(buf, "%s_count %d\n", name, cumulative)
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}

type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64
	sum    float64
}

type histogramSnapshot struct {
	bounds []float64
	counts []uint64
	sum    float64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)+1),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
	h.counts[len(h.bounds)]++
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	return histogramSnapshot{bounds: h.bounds, counts: counts, sum: h.sum}
}
