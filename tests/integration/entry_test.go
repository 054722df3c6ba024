//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySession_AdmitOnce(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	entry := newEntryService(5 * time.Minute)

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	_, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	session, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryPending, session.Result)

	consumed, err := entry.ConsumeSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryAdmitted, consumed.Result)
	assert.NotNil(t, consumed.ConsumedAt)

	// second scan of the same token
	_, err = entry.ConsumeSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionConsumed)
}

func TestEntrySession_CreateRequiresActiveTicket(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	entry := newEntryService(5 * time.Minute)

	// pending reservation, nothing issued yet
	reservation := createPendingReservation(t, event.ID, "user-1", 1)

	_, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	assert.ErrorIs(t, err, service.ErrNoActiveTickets)
}

// Ticket state is validated at scan time, not session creation time.
func TestEntrySession_RejectsWhenTicketNoLongerActive(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	tickets := newTicketService()
	entry := newEntryService(5 * time.Minute)

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	session, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	require.NoError(t, err)

	_, err = tickets.Transition(context.Background(), result.Tickets[0].ID, models.TicketUsed)
	require.NoError(t, err)

	consumed, err := entry.ConsumeSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryRejected, consumed.Result)

	_, err = entry.ConsumeSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionConsumed)
}

func TestEntrySession_Expired(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	entry := newEntryService(0) // everything is already expired

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	_, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	session, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	require.NoError(t, err)

	consumed, err := entry.ConsumeSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionExpired)
	require.NotNil(t, consumed)
	assert.Equal(t, models.EntryRejected, consumed.Result)

	// the expired scan still spent the token
	_, err = entry.ConsumeSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionConsumed)
}

func TestEntrySession_UnknownToken(t *testing.T) {
	cleanTables()
	entry := newEntryService(5 * time.Minute)

	_, err := entry.ConsumeSession(context.Background(), "0b5c9e1a-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

// Duplicate sessions for the same entitlement are tolerated; each one
// answers from live ticket state when scanned.
func TestEntrySession_DuplicateSessionsValidateAtScanTime(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	tickets := newTicketService()
	entry := newEntryService(5 * time.Minute)

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	first, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	require.NoError(t, err)
	second, err := entry.CreateSession(context.Background(), event.ID, "user-1", reservation.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	consumed, err := entry.ConsumeSession(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryAdmitted, consumed.Result)

	// caller marks the ticket used after admission
	_, err = tickets.Transition(context.Background(), result.Tickets[0].ID, models.TicketUsed)
	require.NoError(t, err)

	// the leftover session now sees no active ticket
	leftover, err := entry.ConsumeSession(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryRejected, leftover.Result)
}
