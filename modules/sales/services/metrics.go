package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commissionsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sales",
	Subsystem: "commissions",
	Name:      "computed_total",
	Help:      "Commission line items computed, broken down by type.",
}, []string{"type"})

var calculationGaps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sales",
	Subsystem: "commissions",
	Name:      "calculation_gaps_total",
	Help:      "Line items skipped because a snapshot or pay plan could not be resolved.",
})

var snapshotsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sales",
	Subsystem: "snapshots",
	Name:      "created_total",
	Help:      "Org snapshots lazily created.",
})
