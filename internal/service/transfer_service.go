package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/monitoring"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"github.com/kkkukkk/kin-booking-sub001/pkg/rabbitmq"
	"gorm.io/gorm"
)

// TransferOutcome is one ticket's result in a multi-ticket transfer. Each
// ticket's transfer is its own unit of atomicity; siblings do not roll
// back on a failure.
type TransferOutcome struct {
	TicketID  string         `json:"ticket_id"`
	NewTicket *models.Ticket `json:"new_ticket,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// TransferService moves ownership by retire-and-reissue: the source ticket
// becomes terminal, a journal entry is appended, and a new active ticket
// is created carrying the same reservation, event, number, and cosmetics.
// Retire and reissue commit together, so the capacity-held set never
// gains or loses a seat from a transfer.
type TransferService interface {
	Transfer(ctx context.Context, ticketID, toUserID, reason string) (*models.Ticket, error)
	TransferMany(ctx context.Context, ticketIDs []string, toUserID, reason string) []TransferOutcome
	History(ctx context.Context, ticketID string) ([]models.TransferRecord, error)
}

type transferService struct {
	ticketRepo   repository.TicketRepository
	transferRepo repository.TransferRepository
	publisher    *rabbitmq.Publisher
}

func NewTransferService(
	ticketRepo repository.TicketRepository,
	transferRepo repository.TransferRepository,
	publisher *rabbitmq.Publisher,
) TransferService {
	return &transferService{
		ticketRepo:   ticketRepo,
		transferRepo: transferRepo,
		publisher:    publisher,
	}
}

func (s *transferService) Transfer(ctx context.Context, ticketID, toUserID, reason string) (*models.Ticket, error) {
	var reissued *models.Ticket
	var record *models.TransferRecord

	err := s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("load ticket: %w", err)
		}
		if source.Status != models.TicketActive {
			return ErrInvalidState
		}

		if err := s.ticketRepo.UpdateStatus(ctx, tx, source.ID, models.TicketTransferred); err != nil {
			return fmt.Errorf("retire ticket: %w", err)
		}

		// Same logical seat under a new owner: provenance, number, and
		// cosmetics carry over; only the owner changes.
		reissued = &models.Ticket{
			ID:            uuid.NewString(),
			ReservationID: source.ReservationID,
			EventID:       source.EventID,
			OwnerID:       toUserID,
			Color:         source.Color,
			IsRare:        source.IsRare,
			Status:        models.TicketActive,
			TicketNumber:  source.TicketNumber,
		}
		if err := s.ticketRepo.CreateBatch(ctx, tx, []*models.Ticket{reissued}); err != nil {
			return fmt.Errorf("reissue ticket: %w", err)
		}

		record = &models.TransferRecord{
			TicketID:    source.ID,
			NewTicketID: reissued.ID,
			FromUserID:  source.OwnerID,
			ToUserID:    toUserID,
			Reason:      reason,
		}
		if err := s.transferRepo.Create(ctx, tx, record); err != nil {
			return fmt.Errorf("append transfer record: %w", err)
		}
		return nil
	})

	if err != nil {
		monitoring.TrackTransfer("failed")
		return nil, err
	}

	monitoring.TrackTransfer("transferred")
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyTicketTransferred, record)
	}
	return reissued, nil
}

func (s *transferService) TransferMany(ctx context.Context, ticketIDs []string, toUserID, reason string) []TransferOutcome {
	outcomes := make([]TransferOutcome, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		ticket, err := s.Transfer(ctx, id, toUserID, reason)
		outcome := TransferOutcome{TicketID: id, NewTicket: ticket}
		if err != nil {
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *transferService) History(ctx context.Context, ticketID string) ([]models.TransferRecord, error) {
	return s.transferRepo.FindByTicket(ctx, ticketID)
}
