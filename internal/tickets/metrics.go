package tickets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ticketsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "aisha_tickets_issued_total",
	Help: "Complaint records persisted by the ticket gate.",
})
