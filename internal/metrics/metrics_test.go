package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordUpstreamCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamSuccess("gamelist")
	c.RecordUpstreamSuccess("gamelist")
	c.RecordUpstreamFailure("gameinfo")

	if got := testutil.ToFloat64(c.upstreamSuccess.WithLabelValues("gamelist")); got != 2 {
		t.Errorf("upstream success (gamelist) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.upstreamFail.WithLabelValues("gameinfo")); got != 1 {
		t.Errorf("upstream fail (gameinfo) = %v, want 1", got)
	}
}

func TestCollector_RecordScreeningOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordScreeningOutcome("accepted")
	c.RecordScreeningOutcome("rejected")
	c.RecordScreeningOutcome("skipped")
	c.RecordScreeningOutcome("accepted")

	if got := testutil.ToFloat64(c.screeningOutcome.WithLabelValues("accepted")); got != 2 {
		t.Errorf("screening accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.screeningOutcome.WithLabelValues("skipped")); got != 1 {
		t.Errorf("screening skipped = %v, want 1", got)
	}
}

func TestCollector_RecordCommentCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCommentCreated()
	c.RecordCommentCreated()

	if got := testutil.ToFloat64(c.commentsCreated); got != 2 {
		t.Errorf("comments created = %v, want 2", got)
	}
}

func TestCollector_RecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(502)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("http status 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("502")); got != 1 {
		t.Errorf("http status 502 = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordUpstreamSuccess("gamelist")
	c.RecordUpstreamLatency("gamelist", 150*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "gamedex_upstream_success_total") {
		t.Error("公開メトリクスにgamedex_upstream_success_totalが含まれるべき")
	}
	if !strings.Contains(string(body), "gamedex_upstream_latency_seconds") {
		t.Error("公開メトリクスにgamedex_upstream_latency_secondsが含まれるべき")
	}
}

func TestNopCollector_DoesNotPanic(t *testing.T) {
	var c MetricsCollector = NopCollector{}

	c.RecordUpstreamSuccess("x")
	c.RecordUpstreamFailure("x")
	c.RecordUpstreamLatency("x", time.Second)
	c.RecordScreeningOutcome("accepted")
	c.RecordScreeningLatency(time.Second)
	c.RecordCommentCreated()
	c.RecordHTTPStatus(200)
}
