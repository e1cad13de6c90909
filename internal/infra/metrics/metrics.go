// Package metrics exposes Prometheus collectors for the event ranking pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metric names as constants for consistency.
const (
	MetricFeedRequests    = "eventradar_feed_requests_total"
	MetricScoringRequests = "eventradar_scoring_requests_total"
	MetricUpstreamLatency = "eventradar_upstream_request_duration_seconds"
	MetricRankingDuration = "eventradar_ranking_duration_seconds"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeScored   = "scored"
	OutcomeFallback = "fallback"
)

// Provider labels for upstream latency.
const (
	ProviderFeed       = "feed"
	ProviderCompletion = "completion"
)

// Metrics contains Prometheus metrics for the pipeline.
// All methods are safe on a nil receiver so components can run without metrics.
type Metrics struct {
	feedRequests    *prometheus.CounterVec
	scoringRequests *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	rankingDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance with all collectors initialized but not registered.
func NewMetrics() *Metrics {
	return &Metrics{
		feedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricFeedRequests,
			Help: "Total number of event feed requests by outcome",
		}, []string{"outcome"}),
		scoringRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricScoringRequests,
			Help: "Total number of relevance scoring requests by outcome",
		}, []string{"outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricUpstreamLatency,
			Help:    "Histogram of upstream request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		rankingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRankingDuration,
			Help:    "Histogram of end-to-end nearby event lookups in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"scored"}),
	}
}

// Collectors returns all collectors owned by Metrics.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.feedRequests,
		m.scoringRequests,
		m.upstreamLatency,
		m.rankingDuration,
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// ObserveFeedRequest records one feed round trip.
func (m *Metrics) ObserveFeedRequest(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.feedRequests.WithLabelValues(outcome).Inc()
	m.upstreamLatency.WithLabelValues(ProviderFeed).Observe(elapsed.Seconds())
}

// ObserveCompletion records one completion round trip.
func (m *Metrics) ObserveCompletion(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(ProviderCompletion).Observe(elapsed.Seconds())
}

// IncScoring records the outcome of scoring one event.
func (m *Metrics) IncScoring(outcome string) {
	if m == nil {
		return
	}
	m.scoringRequests.WithLabelValues(outcome).Inc()
}

// ObserveRanking records the duration of one nearby event lookup.
func (m *Metrics) ObserveRanking(scored bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if scored {
		label = "true"
	}
	m.rankingDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// NewRegistry creates the process registry with runtime collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// New creates Metrics and registers them on reg.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := NewMetrics()
	if err := m.Register(reg); err != nil {
		return nil, err
	}

	return m, nil
}
