package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on a per-server registry so several servers can coexist in tests
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Recomputes      prometheus.Counter
	NetWorth        prometheus.Gauge
	FFScore         prometheus.Gauge
}

// NewMetrics registers the API metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finfree_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finfree_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		Recomputes: factory.NewCounter(prometheus.CounterOpts{
			Name: "finfree_recomputes_total",
			Help: "Total number of derived summaries computed",
		}),
		NetWorth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finfree_tracked_net_worth",
			Help: "Net worth of the tracked state",
		}),
		FFScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finfree_tracked_ff_score_pct",
			Help: "Accumulation FF score of the tracked state in percent",
		}),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request counts and latency by route template
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
