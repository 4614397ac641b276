package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the platform.
type Metrics struct {
	PointsCredited *prometheus.CounterVec
	PointsDebited  *prometheus.CounterVec
	RewardClaims   *prometheus.CounterVec
	LedgerEntries  *prometheus.CounterVec
}

// New creates a new metrics instance registered on reg. Tests pass a fresh
// registry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PointsCredited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamearena",
				Name:      "points_credited_total",
				Help:      "Total points credited to user balances",
			},
			[]string{"activity_type"},
		),
		PointsDebited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamearena",
				Name:      "points_debited_total",
				Help:      "Total points debited from user balances",
			},
			[]string{"activity_type"},
		),
		RewardClaims: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamearena",
				Name:      "reward_claims_total",
				Help:      "Total reward claim attempts",
			},
			[]string{"result"}, // success, rejected
		),
		LedgerEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamearena",
				Name:      "ledger_entries_total",
				Help:      "Total activity ledger rows written",
			},
			[]string{"activity_type"},
		),
	}
}

// ObserveDelta records a single balance movement.
func (m *Metrics) ObserveDelta(activityType string, delta int) {
	m.LedgerEntries.WithLabelValues(activityType).Inc()
	if delta >= 0 {
		m.PointsCredited.WithLabelValues(activityType).Add(float64(delta))
	} else {
		m.PointsDebited.WithLabelValues(activityType).Add(float64(-delta))
	}
}
