package assess

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cognilevel_turns_total",
		Help: "Total completed assessment turns by selection strategy",
	}, []string{"strategy"})

	sessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cognilevel_sessions_completed_total",
		Help: "Total finalized assessment sessions by quality tier and stop reason",
	}, []string{"quality", "reason"})
)
