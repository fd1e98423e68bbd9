package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// analysesTotal counts completed analysis runs by kind and resulting risk
// level.
var analysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tokenwatch_analyses_total",
		Help: "Completed analysis runs by analysis type and risk level",
	},
	[]string{"type", "level"},
)
