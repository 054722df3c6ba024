package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every allowed edge of the ticket state machine. Anything outside this
// set must be rejected, which the exhaustive grid below verifies.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketActive:          {TicketCancelRequested, TicketUsed, TicketTransferred},
	TicketCancelRequested: {TicketCancelled, TicketActive},
	TicketCancelled:       {},
	TicketUsed:            {},
	TicketTransferred:     {},
}

func TestTicketStatus_TransitionTableClosure(t *testing.T) {
	for _, from := range AllTicketStatuses {
		for _, to := range AllTicketStatuses {
			expected := false
			for _, allowed := range allowedTransitions[from] {
				if allowed == to {
					expected = true
				}
			}
			assert.Equalf(t, expected, from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestTicketStatus_Terminal(t *testing.T) {
	assert.False(t, TicketActive.Terminal())
	assert.False(t, TicketCancelRequested.Terminal())
	assert.True(t, TicketCancelled.Terminal())
	assert.True(t, TicketUsed.Terminal())
	assert.True(t, TicketTransferred.Terminal())
}

func TestTicketStatus_HoldsSeat(t *testing.T) {
	assert.True(t, TicketActive.HoldsSeat())
	assert.True(t, TicketCancelRequested.HoldsSeat(), "cancel-requested seats are provisionally held")
	assert.False(t, TicketCancelled.HoldsSeat())
	assert.False(t, TicketUsed.HoldsSeat())
	assert.False(t, TicketTransferred.HoldsSeat())
}

func TestTicketStatus_UnknownStatusHasNoTransitions(t *testing.T) {
	bogus := TicketStatus("refunded")
	for _, to := range AllTicketStatuses {
		assert.False(t, bogus.CanTransitionTo(to))
	}
	assert.True(t, bogus.Terminal())
}
