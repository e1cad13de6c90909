package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}

	return nil
}

func counterValue(family *dto.MetricFamily, label, value string) float64 {
	for _, metric := range family.GetMetric() {
		for _, pair := range metric.GetLabel() {
			if pair.GetName() == label && pair.GetValue() == value {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	require.Len(t, m.Collectors(), 4)

	// Registering twice must fail on duplicate collectors
	assert.Error(t, m.Register(reg))
}

func TestMetrics_Observations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveFeedRequest(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveFeedRequest(OutcomeError, 5*time.Millisecond)
	m.IncScoring(OutcomeScored)
	m.IncScoring(OutcomeScored)
	m.IncScoring(OutcomeFallback)
	m.ObserveCompletion(time.Second)
	m.ObserveRanking(true, 2*time.Second)

	feed := findFamily(t, reg, MetricFeedRequests)
	require.NotNil(t, feed)
	assert.Equal(t, 1.0, counterValue(feed, "outcome", OutcomeSuccess))
	assert.Equal(t, 1.0, counterValue(feed, "outcome", OutcomeError))

	scoring := findFamily(t, reg, MetricScoringRequests)
	require.NotNil(t, scoring)
	assert.Equal(t, 2.0, counterValue(scoring, "outcome", OutcomeScored))
	assert.Equal(t, 1.0, counterValue(scoring, "outcome", OutcomeFallback))

	latency := findFamily(t, reg, MetricUpstreamLatency)
	require.NotNil(t, latency)
	assert.Len(t, latency.GetMetric(), 2)

	assert.NotNil(t, findFamily(t, reg, MetricRankingDuration))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFeedRequest(OutcomeSuccess, time.Millisecond)
		m.ObserveCompletion(time.Millisecond)
		m.IncScoring(OutcomeScored)
		m.ObserveRanking(false, time.Millisecond)
	})
}
