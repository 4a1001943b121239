package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 管理服务的 Prometheus 指标。
// 指标注册在独立的 Registry 上，/metrics 只暴露本服务的指标。
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recommendTotal *prometheus.CounterVec
	retrainTotal   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actireco_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "actireco_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	m.recommendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actireco_recommendations_total",
			Help: "Total number of recommendation requests by scoring mode",
		},
		[]string{"mode"}, // hybrid / content_only
	)

	m.retrainTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "actireco_cf_retrains_total",
			Help: "Total number of successful CF retrains",
		},
	)

	m.registry.MustRegister(m.httpRequestsTotal)
	m.registry.MustRegister(m.httpRequestDuration)
	m.registry.MustRegister(m.recommendTotal)
	m.registry.MustRegister(m.retrainTotal)

	return m
}

// Middleware 采集每个请求的计数与耗时。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// Handler 返回 /metrics 的 Prometheus handler。
func (m *Metrics) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// ObserveRecommend 记录一次推荐的打分模式。
func (m *Metrics) ObserveRecommend(cfUsed bool) {
	mode := "hybrid"
	if !cfUsed {
		mode = "content_only"
	}
	m.recommendTotal.WithLabelValues(mode).Inc()
}

// ObserveRetrain 记录一次成功的重训。
func (m *Metrics) ObserveRetrain() {
	m.retrainTotal.Inc()
}
