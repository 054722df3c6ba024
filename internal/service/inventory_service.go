package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kkkukkk/kin-booking-sub001/internal/cache"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"gorm.io/gorm"
)

// InventoryService is the derived seat ledger: capacity minus tickets in
// the capacity-held statuses, computed from ticket rows on every read so
// there is no counter to drift. The value is a pre-flight hint for
// callers; the approval path never trusts it and recounts under its own
// lock.
type InventoryService interface {
	AvailableSeats(ctx context.Context, eventID uint) (int, error)
}

type inventoryService struct {
	eventRepo    repository.EventRepository
	ticketRepo   repository.TicketRepository
	availability *cache.AvailabilityCache
}

func NewInventoryService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	availability *cache.AvailabilityCache,
) InventoryService {
	return &inventoryService{
		eventRepo:    eventRepo,
		ticketRepo:   ticketRepo,
		availability: availability,
	}
}

func (s *inventoryService) AvailableSeats(ctx context.Context, eventID uint) (int, error) {
	if cached, ok := s.availability.Get(ctx, eventID); ok {
		return cached, nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, fmt.Errorf("load event: %w", err)
	}

	held, err := s.ticketRepo.CountHeld(ctx, s.ticketRepo.GetDB(), eventID)
	if err != nil {
		return 0, fmt.Errorf("count held tickets: %w", err)
	}

	available := event.SeatCapacity - int(held)
	s.availability.Set(ctx, eventID, available)
	return available, nil
}
