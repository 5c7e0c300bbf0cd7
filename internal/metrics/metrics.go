package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerateTotal counts summary generation attempts by outcome.
	GenerateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fruitstand_summary_generate_total",
		Help: "Daily summary generation attempts by outcome.",
	}, []string{"outcome"})

	// ReportsDeleted counts deleted shift reports.
	ReportsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fruitstand_shift_reports_deleted_total",
		Help: "Shift reports deleted, lines included.",
	})
)
