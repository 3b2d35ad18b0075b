package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tableorder"

// Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
	OrdersPlaced      *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	CartMutations     *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
}

func New(service string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "orders_placed_total",
			Help:      "Orders placed, by payment method.",
		}, []string{"payment_method"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "order_status_transitions_total",
			Help:      "Order status changes, by the status entered.",
		}, []string{"status"}),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "cart_mutations_total",
			Help:      "Cart changes, by operation.",
		}, []string{"op"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "active_sessions",
			Help:      "Open table sessions.",
		}),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.OrdersPlaced,
		m.StatusTransitions,
		m.CartMutations,
		m.ActiveSessions,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware records every request under its route pattern, not the raw path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

// The helpers below accept a nil receiver so services can run without metrics.

func (m *Metrics) OrderPlaced(paymentMethod string) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(paymentMethod).Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) CartChanged(op string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
