package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scopeResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "org",
	Subsystem: "visibility",
	Name:      "scope_resolutions_total",
	Help:      "Scope resolutions broken down by resulting scope kind.",
}, []string{"kind"})
