package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	peersResolved    prometheus.Histogram
	peersDropped     *prometheus.CounterVec
	finalScores      *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_analyses_total",
			Help: "Total number of ticker analyses",
		},
		[]string{"status"},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scorecard_analysis_duration_seconds",
			Help:    "Duration of a full analysis including peers",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)
	r.peersResolved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scorecard_peers_resolved",
			Help:    "Number of peers returned by the peer lookup",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
	r.peersDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_peers_dropped_total",
			Help: "Peers omitted from a comparison because their data could not be fetched",
		},
		[]string{"reason"},
	)
	r.finalScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scorecard_final_score",
			Help:    "Distribution of final scores out of 20",
			Buckets: []float64{6, 8, 10, 12, 14, 16, 18, 20},
		},
		[]string{"role"},
	)

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.peersResolved)
	reg.MustRegister(r.peersDropped)
	reg.MustRegister(r.finalScores)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAnalysis records a completed or failed analysis.
func (r *Registry) RecordAnalysis(status string, duration float64) {
	r.analysesTotal.WithLabelValues(status).Inc()
	r.analysisDuration.Observe(duration)
}

// RecordPeers records how many peers the lookup returned.
func (r *Registry) RecordPeers(count int) {
	r.peersResolved.Observe(float64(count))
}

// RecordPeerDropped records a peer omitted from a comparison.
func (r *Registry) RecordPeerDropped(reason string) {
	r.peersDropped.WithLabelValues(reason).Inc()
}

// RecordScore records a final score; role is "primary" or "peer".
func (r *Registry) RecordScore(role string, score float64) {
	r.finalScores.WithLabelValues(role).Observe(score)
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
