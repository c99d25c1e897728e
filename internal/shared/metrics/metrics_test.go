package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesCountersAndHistogram(t *testing.T) {
	IncScanStarted()
	IncScanCompleted()
	IncScoreFallback()
	ObserveScanDurationMs(1500)

	out := Render()

	for _, name := range []string{
		"scan_started_total",
		"scan_completed_total",
		"scan_failed_total",
		"score_fallback_total",
		"guide_fallback_total",
		"scan_duration_ms_bucket",
		"scan_duration_ms_sum",
		"scan_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
	if !strings.Contains(out, `scan_duration_ms_bucket{le="+Inf"}`) {
		t.Fatalf("expected +Inf bucket:\n%s", out)
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
	if snap.sum != 555 {
		t.Fatalf("expected sum 555, got %g", snap.sum)
	}
}
