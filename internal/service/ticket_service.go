package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kkkukkk/kin-booking-sub001/internal/cache"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/monitoring"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/pkg/rabbitmq"
	"gorm.io/gorm"
)

type TicketService interface {
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error)
	ListByReservation(ctx context.Context, reservationID uint) ([]models.Ticket, error)
	Transition(ctx context.Context, ticketID string, next models.TicketStatus) (*models.Ticket, error)
	BulkCancelRequest(ctx context.Context, eventID uint, ownerID string) ([]models.Ticket, error)
}

type ticketService struct {
	ticketRepo   repository.TicketRepository
	eventRepo    repository.EventRepository
	availability *cache.AvailabilityCache
	publisher    *rabbitmq.Publisher
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	availability *cache.AvailabilityCache,
	publisher *rabbitmq.Publisher,
) TicketService {
	return &ticketService{
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		availability: availability,
		publisher:    publisher,
	}
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) ListByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	return s.ticketRepo.FindByOwner(ctx, ownerID)
}

func (s *ticketService) ListByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	return s.ticketRepo.FindByEvent(ctx, eventID)
}

func (s *ticketService) ListByReservation(ctx context.Context, reservationID uint) ([]models.Ticket, error) {
	return s.ticketRepo.FindByReservation(ctx, reservationID)
}

// Transition applies one step of the ticket state machine. Anything not in
// the transition table fails with ErrInvalidTransition and leaves the
// ticket unchanged. Finalizing a cancellation frees the seat, so that path
// also relabels a sold-out event and drops the cached availability.
func (s *ticketService) Transition(ctx context.Context, ticketID string, next models.TicketStatus) (*models.Ticket, error) {
	var updated *models.Ticket
	freesSeat := false

	err := s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("load ticket: %w", err)
		}

		if !ticket.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		freesSeat = ticket.Status.HoldsSeat() && !next.HoldsSeat()

		if err := s.ticketRepo.UpdateStatus(ctx, tx, ticket.ID, next); err != nil {
			return fmt.Errorf("update ticket status: %w", err)
		}

		if next == models.TicketCancelled {
			// Seat is confirmed free; a sold-out event can sell again.
			event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, ticket.EventID)
			if err != nil {
				return fmt.Errorf("load event: %w", err)
			}
			if event.Status == models.EventSoldOut {
				if err := s.eventRepo.UpdateStatus(ctx, tx, event.ID, models.EventOngoing); err != nil {
					return fmt.Errorf("reopen event: %w", err)
				}
			}
		}

		ticket.Status = next
		updated = ticket
		return nil
	})

	if err != nil {
		return nil, err
	}

	monitoring.TrackTransition(string(next))
	if freesSeat {
		s.availability.Invalidate(ctx, updated.EventID)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyTicketTransition, updated)
	}
	return updated, nil
}

// BulkCancelRequest moves every active ticket the user holds for the event
// to cancel_requested as one atomic batch. A partial batch is structurally
// impossible: the locks, the qualification query, and the update share a
// transaction.
func (s *ticketService) BulkCancelRequest(ctx context.Context, eventID uint, ownerID string) ([]models.Ticket, error) {
	var moved []models.Ticket

	err := s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tickets, err := s.ticketRepo.FindActiveByEventAndOwnerForUpdate(ctx, tx, eventID, ownerID)
		if err != nil {
			return fmt.Errorf("load active tickets: %w", err)
		}
		if len(tickets) == 0 {
			return ErrNoActiveTickets
		}

		ids := make([]string, len(tickets))
		for i, t := range tickets {
			ids[i] = t.ID
		}
		if err := s.ticketRepo.UpdateStatusBatch(ctx, tx, ids, models.TicketCancelRequested); err != nil {
			return fmt.Errorf("update ticket batch: %w", err)
		}

		for i := range tickets {
			tickets[i].Status = models.TicketCancelRequested
		}
		moved = tickets
		return nil
	})

	if err != nil {
		return nil, err
	}

	// cancel_requested still holds the seat, so availability is unchanged.
	monitoring.TrackTransition(string(models.TicketCancelRequested))
	if s.publisher != nil {
		for i := range moved {
			_ = s.publisher.Publish(rabbitmq.KeyTicketTransition, &moved[i])
		}
	}
	return moved, nil
}
