package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationApprovals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_approvals_total",
			Help: "Reservation approval attempts by outcome",
		},
		[]string{"outcome"},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets created through reservation approval",
		},
	)

	rareTicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rare_tickets_issued_total",
			Help: "Tickets that won the rare cosmetic draw",
		},
	)

	ticketTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transitions_total",
			Help: "Ticket status transitions by target status",
		},
		[]string{"to_status"},
	)

	ticketTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transfers_total",
			Help: "Ticket transfer attempts by outcome",
		},
		[]string{"outcome"},
	)

	entryScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_scans_total",
			Help: "Entry session consumptions by result",
		},
		[]string{"result"},
	)

	approvalDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reservation_approval_duration_seconds",
			Help:    "Duration of the approval transaction including retries",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

func TrackApproval(outcome string, issued, rare int, took time.Duration) {
	reservationApprovals.WithLabelValues(outcome).Inc()
	approvalDuration.Observe(took.Seconds())
	if issued > 0 {
		ticketsIssued.Add(float64(issued))
	}
	if rare > 0 {
		rareTicketsIssued.Add(float64(rare))
	}
}

func TrackTransition(toStatus string) {
	ticketTransitions.WithLabelValues(toStatus).Inc()
}

func TrackTransfer(outcome string) {
	ticketTransfers.WithLabelValues(outcome).Inc()
}

func TrackEntryScan(result string) {
	entryScans.WithLabelValues(result).Inc()
}
