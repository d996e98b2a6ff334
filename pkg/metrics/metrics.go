package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch counters, labeled by alert category so suppression rates per
// category are visible on /metrics.
var (
	AlertsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eldercare",
		Subsystem: "alerts",
		Name:      "dispatched_total",
		Help:      "Alerts created after passing cooldown and crisis checks.",
	}, []string{"category", "severity"})

	AlertsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eldercare",
		Subsystem: "alerts",
		Name:      "suppressed_total",
		Help:      "Dispatch attempts rejected by an active cooldown.",
	}, []string{"category"})

	CrisisEscalations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eldercare",
		Subsystem: "alerts",
		Name:      "crisis_escalations_total",
		Help:      "Signals force-escalated by the crisis filter.",
	})
)
