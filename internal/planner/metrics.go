package planner

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "allocation_runs_total",
		Help: "How many times allocations were computed and persisted for an income plan.",
	})

	previewsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "allocation_previews_total",
		Help: "How many allocation previews were computed.",
	})

	forecastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "allocation_forecasts_total",
		Help: "How many monthly forecasts were computed.",
	})

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "income_plan_transitions_total",
			Help: "How many income plan status changes happened, partitioned by the new status.",
		},
		[]string{"status"},
	)
)

// Collectors returns all Prometheus collectors of the planner.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		runsTotal,
		previewsTotal,
		forecastsTotal,
		transitionsTotal,
	}
}
