package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freight-netback/core/session"
	"freight-netback/core/types"
)

const namespace = "netback"

// Metrics holds the service collectors. Each Server owns its own registry
// so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	quotes          *prometheus.CounterVec
	datasets        *prometheus.CounterVec
	sessionsEvicted prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors; live sessions are read from sessions
func NewMetrics(sessions *session.Registry) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quotes served, by lookup and netback status.",
		}, []string{"lookup", "netback"}),
		datasets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_total",
			Help:      "Rate tables submitted, by outcome.",
		}, []string{"result"}),
		sessionsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Sessions removed to stay under the session limit or by delete.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	m.registry.MustRegister(
		m.quotes,
		m.datasets,
		m.sessionsEvicted,
		m.requestDuration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live sessions.",
		}, func() float64 { return float64(sessions.Len()) }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeQuote(q types.Quote) {
	m.quotes.WithLabelValues(string(q.Lookup.Status), string(q.Netback.Status)).Inc()
}

func (m *Metrics) observeDataset(err error) {
	result := "loaded"
	if err != nil {
		result = "rejected"
	}
	m.datasets.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRequest(route, method string, status int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
