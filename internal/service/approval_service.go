package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kkkukkk/kin-booking-sub001/internal/cache"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/monitoring"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/pkg/rabbitmq"
	"gorm.io/gorm"
)

// RarityProbability is the per-ticket chance of the rare cosmetic variant.
// Rarity carries no entitlement: it never touches capacity, pricing, or
// ticket numbering.
const RarityProbability = 0.05

// approvalRetries bounds retries of the approval transaction on storage
// conflicts. Business errors are never retried.
const approvalRetries = 1

type ApprovalResult struct {
	Reservation *models.Reservation
	Tickets     []*models.Ticket
}

// ApprovalService turns one pending reservation into quantity tickets, or
// fails leaving the reservation pending. The capacity re-check and the
// ticket inserts run in a single transaction under a row lock on the
// event, so concurrent approvals for the same event cannot jointly
// overbook.
type ApprovalService interface {
	Approve(ctx context.Context, reservationID uint) (*ApprovalResult, error)
}

type approvalService struct {
	reservationRepo repository.ReservationRepository
	eventRepo       repository.EventRepository
	ticketRepo      repository.TicketRepository
	availability    *cache.AvailabilityCache
	publisher       *rabbitmq.Publisher

	// rarity draw, swappable in tests
	randFloat func() float64
}

func NewApprovalService(
	reservationRepo repository.ReservationRepository,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	availability *cache.AvailabilityCache,
	publisher *rabbitmq.Publisher,
) ApprovalService {
	return &approvalService{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		ticketRepo:      ticketRepo,
		availability:    availability,
		publisher:       publisher,
		randFloat:       rand.Float64,
	}
}

func (s *approvalService) Approve(ctx context.Context, reservationID uint) (*ApprovalResult, error) {
	start := time.Now()

	result, err := s.approveOnce(ctx, reservationID)
	if err != nil && !isBusinessError(err) {
		// One bounded retry for transactional conflicts; the reservation is
		// still pending, so the attempt is repeatable.
		for i := 0; i < approvalRetries; i++ {
			result, err = s.approveOnce(ctx, reservationID)
			if err == nil || isBusinessError(err) {
				break
			}
		}
	}

	if err != nil {
		monitoring.TrackApproval(approvalOutcome(err), 0, 0, time.Since(start))
		return nil, err
	}

	rare := 0
	for _, t := range result.Tickets {
		if t.IsRare {
			rare++
		}
	}
	monitoring.TrackApproval("approved", len(result.Tickets), rare, time.Since(start))
	s.availability.Invalidate(ctx, result.Reservation.EventID)

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyReservationApproved, result.Reservation)
		for _, t := range result.Tickets {
			_ = s.publisher.Publish(rabbitmq.KeyTicketIssued, t)
		}
	}

	return result, nil
}

func (s *approvalService) approveOnce(ctx context.Context, reservationID uint) (*ApprovalResult, error) {
	var result *ApprovalResult

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation: %w", err)
		}
		if reservation.Status != models.ReservationPending {
			return ErrInvalidState
		}

		// Lock the event row; this serializes concurrent approvals per event.
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reservation.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("load event: %w", err)
		}

		// Recompute availability inside the lock. Whatever the UI showed
		// earlier was a hint; this count is the only one that commits.
		held, err := s.ticketRepo.CountHeld(ctx, tx, event.ID)
		if err != nil {
			return fmt.Errorf("count held tickets: %w", err)
		}
		available := event.SeatCapacity - int(held)
		if available < reservation.Quantity {
			return ErrCapacityExceeded
		}

		inUse, err := s.ticketRepo.NumbersInUse(ctx, tx, event.ID)
		if err != nil {
			return fmt.Errorf("load ticket numbers: %w", err)
		}
		numbers := allocateTicketNumbers(inUse, reservation.Quantity)

		tickets := make([]*models.Ticket, 0, reservation.Quantity)
		for i := 0; i < reservation.Quantity; i++ {
			color, rare := s.drawColor(event.TicketColor)
			tickets = append(tickets, &models.Ticket{
				ID:            uuid.NewString(),
				ReservationID: reservation.ID,
				EventID:       event.ID,
				OwnerID:       reservation.UserID,
				Color:         color,
				IsRare:        rare,
				Status:        models.TicketActive,
				TicketNumber:  numbers[i],
			})
		}

		if err := s.ticketRepo.CreateBatch(ctx, tx, tickets); err != nil {
			return fmt.Errorf("insert tickets: %w", err)
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, reservation.ID, models.ReservationApproved); err != nil {
			return fmt.Errorf("approve reservation: %w", err)
		}
		if available == reservation.Quantity && event.Status != models.EventCompleted {
			if err := s.eventRepo.UpdateStatus(ctx, tx, event.ID, models.EventSoldOut); err != nil {
				return fmt.Errorf("mark event sold out: %w", err)
			}
		}

		reservation.Status = models.ReservationApproved
		result = &ApprovalResult{Reservation: reservation, Tickets: tickets}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// drawColor runs one Bernoulli trial: a rare gradient with probability
// RarityProbability, the event's default color otherwise.
func (s *approvalService) drawColor(defaultColor string) (string, bool) {
	if s.randFloat() < RarityProbability {
		return rareGradient(s.randFloat), true
	}
	return defaultColor, false
}

// rareGradient generates the cosmetic gradient for a rare ticket from two
// random hues.
func rareGradient(randFloat func() float64) string {
	h1 := int(randFloat() * 360)
	h2 := (h1 + 90 + int(randFloat()*180)) % 360
	return fmt.Sprintf("linear-gradient(135deg, hsl(%d, 85%%, 62%%), hsl(%d, 85%%, 62%%))", h1, h2)
}

// allocateTicketNumbers picks quantity numbers for new tickets: freed
// (cancelled) numbers lowest-first, then fresh numbers above the current
// maximum. Dense visible numbering is a policy choice, not a correctness
// requirement. inUse must be sorted ascending.
func allocateTicketNumbers(inUse []int, quantity int) []int {
	numbers := make([]int, 0, quantity)
	next := 1
	i := 0
	for len(numbers) < quantity {
		for i < len(inUse) && inUse[i] < next {
			i++
		}
		if i < len(inUse) && inUse[i] == next {
			i++
		} else {
			numbers = append(numbers, next)
		}
		next++
	}
	return numbers
}

func approvalOutcome(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrEventNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	default:
		return "storage_failure"
	}
}
