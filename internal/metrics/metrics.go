// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層やクライアント層から利用する。
type MetricsCollector interface {
	RecordUpstreamSuccess(operation string)
	RecordUpstreamFailure(operation string)
	RecordUpstreamLatency(operation string, duration time.Duration)
	RecordScreeningOutcome(outcome string)
	RecordScreeningLatency(duration time.Duration)
	RecordCommentCreated()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	upstreamSuccess  *prometheus.CounterVec
	upstreamFail     *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	screeningOutcome *prometheus.CounterVec
	screeningLatency prometheus.Histogram
	commentsCreated  prometheus.Counter
	httpStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamedex_upstream_success_total",
			Help: "カタログAPI呼び出し成功の合計数",
		}, []string{"operation"}),
		upstreamFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamedex_upstream_fail_total",
			Help: "カタログAPI呼び出し失敗の合計数",
		}, []string{"operation"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamedex_upstream_latency_seconds",
			Help:    "カタログAPI呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		screeningOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamedex_screening_outcome_total",
			Help: "毒性スクリーニング結果別の合計数",
		}, []string{"outcome"}),
		screeningLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamedex_screening_latency_seconds",
			Help:    "毒性スクリーニングのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		commentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamedex_comments_created_total",
			Help: "作成されたコメントの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamedex_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.upstreamSuccess,
		c.upstreamFail,
		c.upstreamLatency,
		c.screeningOutcome,
		c.screeningLatency,
		c.commentsCreated,
		c.httpStatus,
	)

	return c
}

// RecordUpstreamSuccess はカタログAPI呼び出し成功を記録する。
func (c *Collector) RecordUpstreamSuccess(operation string) {
	c.upstreamSuccess.WithLabelValues(operation).Inc()
}

// RecordUpstreamFailure はカタログAPI呼び出し失敗を記録する。
func (c *Collector) RecordUpstreamFailure(operation string) {
	c.upstreamFail.WithLabelValues(operation).Inc()
}

// RecordUpstreamLatency はカタログAPI呼び出しのレイテンシを記録する。
func (c *Collector) RecordUpstreamLatency(operation string, duration time.Duration) {
	c.upstreamLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordScreeningOutcome はスクリーニング結果（accepted/rejected/skipped）を記録する。
func (c *Collector) RecordScreeningOutcome(outcome string) {
	c.screeningOutcome.WithLabelValues(outcome).Inc()
}

// RecordScreeningLatency はスクリーニングのレイテンシを記録する。
func (c *Collector) RecordScreeningLatency(duration time.Duration) {
	c.screeningLatency.Observe(duration.Seconds())
}

// RecordCommentCreated はコメント作成を記録する。
func (c *Collector) RecordCommentCreated() {
	c.commentsCreated.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector は何も記録しないCollector。テスト用。
type NopCollector struct{}

func (NopCollector) RecordUpstreamSuccess(operation string)                          {}
func (NopCollector) RecordUpstreamFailure(operation string)                          {}
func (NopCollector) RecordUpstreamLatency(operation string, duration time.Duration) {}
func (NopCollector) RecordScreeningOutcome(outcome string)                           {}
func (NopCollector) RecordScreeningLatency(duration time.Duration)                   {}
func (NopCollector) RecordCommentCreated()                                           {}
func (NopCollector) RecordHTTPStatus(statusCode int)                                 {}

// compile-time interface check
var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)
