package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aisha_turns_total",
		Help: "Conversational turns handled.",
	})
	completionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aisha_completion_failures_total",
		Help: "Completion-service calls that returned an error.",
	})
)
