package handler

import "github.com/prometheus/client_golang/prometheus"

var (
	alertsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aira_alerts_ingested_total",
		Help: "Alerts ingested, by source.",
	}, []string{"source"})

	summaryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aira_summary_failures_total",
		Help: "Alerts ingested without an AI summary.",
	})

	actionsDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aira_actions_dispatched_total",
		Help: "Interactive actions dispatched, by action and outcome.",
	}, []string{"action", "outcome"})
)

func init() {
	prometheus.MustRegister(alertsIngested, summaryFailures, actionsDispatched)
}
