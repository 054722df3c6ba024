//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer_PreservesProvenanceAndCapacity(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	transfers := newTransferService()

	reservation := createPendingReservation(t, event.ID, "user-1", 2)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	heldBefore := heldCount(t, event.ID)
	source := result.Tickets[0]

	reissued, err := transfers.Transfer(context.Background(), source.ID, "user-2", "gift")
	require.NoError(t, err)

	// provenance and seat identity carry over; only the owner changes
	assert.NotEqual(t, source.ID, reissued.ID)
	assert.Equal(t, source.ReservationID, reissued.ReservationID)
	assert.Equal(t, source.EventID, reissued.EventID)
	assert.Equal(t, source.TicketNumber, reissued.TicketNumber)
	assert.Equal(t, source.IsRare, reissued.IsRare)
	assert.Equal(t, "user-2", reissued.OwnerID)
	assert.Equal(t, models.TicketActive, reissued.Status)

	var retired models.Ticket
	require.NoError(t, testDB.First(&retired, "id = ?", source.ID).Error)
	assert.Equal(t, models.TicketTransferred, retired.Status)

	// net zero seats from a transfer
	assert.Equal(t, heldBefore, heldCount(t, event.ID))

	records, err := transfers.History(context.Background(), source.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, source.ID, records[0].TicketID)
	assert.Equal(t, reissued.ID, records[0].NewTicketID)
	assert.Equal(t, "user-1", records[0].FromUserID)
	assert.Equal(t, "user-2", records[0].ToUserID)
	assert.Equal(t, "gift", records[0].Reason)

	// the journal is reachable from the reissued side too
	viaNew, err := transfers.History(context.Background(), reissued.ID)
	require.NoError(t, err)
	assert.Len(t, viaNew, 1)
}

func TestTransfer_RetiredTicketCannotTransferAgain(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	transfers := newTransferService()

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	source := result.Tickets[0]
	_, err = transfers.Transfer(context.Background(), source.ID, "user-2", "gift")
	require.NoError(t, err)

	_, err = transfers.Transfer(context.Background(), source.ID, "user-3", "again")
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

// A failed sibling does not roll back the successes: each ticket's
// transfer is its own unit of atomicity.
func TestTransferMany_PerTicketAtomicity(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	tickets := newTicketService()
	transfers := newTransferService()

	reservation := createPendingReservation(t, event.ID, "user-1", 3)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	// make the middle ticket untransferable
	_, err = tickets.Transition(context.Background(), result.Tickets[1].ID, models.TicketUsed)
	require.NoError(t, err)

	ids := []string{result.Tickets[0].ID, result.Tickets[1].ID, result.Tickets[2].ID}
	outcomes := transfers.TransferMany(context.Background(), ids, "user-2", "group handoff")

	require.Len(t, outcomes, 3)
	assert.Empty(t, outcomes[0].Error)
	assert.NotNil(t, outcomes[0].NewTicket)
	assert.NotEmpty(t, outcomes[1].Error)
	assert.Nil(t, outcomes[1].NewTicket)
	assert.Empty(t, outcomes[2].Error)
	assert.NotNil(t, outcomes[2].NewTicket)

	// transferred chains are not double counted
	assert.Equal(t, int64(2), heldCount(t, event.ID))
}

// A chain of transfers keeps one journal entry per hop.
func TestTransfer_ChainOfCustody(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Kin Live 2026", 10)
	approvals := newApprovalService()
	transfers := newTransferService()

	reservation := createPendingReservation(t, event.ID, "user-1", 1)
	result, err := approvals.Approve(context.Background(), reservation.ID)
	require.NoError(t, err)

	hop1, err := transfers.Transfer(context.Background(), result.Tickets[0].ID, "user-2", "first hop")
	require.NoError(t, err)
	hop2, err := transfers.Transfer(context.Background(), hop1.ID, "user-3", "second hop")
	require.NoError(t, err)

	assert.Equal(t, result.Tickets[0].ReservationID, hop2.ReservationID)

	middle, err := transfers.History(context.Background(), hop1.ID)
	require.NoError(t, err)
	assert.Len(t, middle, 2, "middle ticket appears as reissued and as retired")

	assert.Equal(t, int64(1), heldCount(t, event.ID))
}
