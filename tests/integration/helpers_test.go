//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, name string, capacity int) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:         name,
		SeatCapacity: capacity,
		TicketPrice:  decimal.NewFromInt(55000),
		TicketColor:  "#1f6feb",
		Status:       models.EventOngoing,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func createPendingReservation(t *testing.T, eventID uint, userID string, quantity int) *models.Reservation {
	t.Helper()
	reservation := &models.Reservation{
		EventID:          eventID,
		UserID:           userID,
		Quantity:         quantity,
		TicketHolderName: userID,
		Status:           models.ReservationPending,
	}
	require.NoError(t, testDB.Create(reservation).Error)
	return reservation
}

func newApprovalService() service.ApprovalService {
	return service.NewApprovalService(
		repository.NewReservationRepository(testDB),
		repository.NewEventRepository(testDB),
		repository.NewTicketRepository(testDB),
		nil, // no cache
		nil, // no publisher
	)
}

func newTicketService() service.TicketService {
	return service.NewTicketService(
		repository.NewTicketRepository(testDB),
		repository.NewEventRepository(testDB),
		nil,
		nil,
	)
}

func newTransferService() service.TransferService {
	return service.NewTransferService(
		repository.NewTicketRepository(testDB),
		repository.NewTransferRepository(testDB),
		nil,
	)
}

func newEntryService(ttl time.Duration) service.EntryService {
	return service.NewEntryService(
		repository.NewEntrySessionRepository(testDB),
		repository.NewTicketRepository(testDB),
		nil,
		ttl,
	)
}

func newInventoryService() service.InventoryService {
	return service.NewInventoryService(
		repository.NewEventRepository(testDB),
		repository.NewTicketRepository(testDB),
		nil,
	)
}

// heldCount is the capacity-counted ticket set for an event, straight from
// the database.
func heldCount(t *testing.T, eventID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, testDB.Model(&models.Ticket{}).
		Where("event_id = ? AND status IN ?", eventID, models.CapacityHeldStatuses).
		Count(&count).Error)
	return count
}
