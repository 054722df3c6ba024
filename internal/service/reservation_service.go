package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"github.com/kkkukkk/kin-booking-sub001/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type ReservationService interface {
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListByEvent(ctx context.Context, eventID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	VoidReservation(ctx context.Context, id uint) (*models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	eventRepo       repository.EventRepository
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	eventRepo repository.EventRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	if reservation.Quantity < 1 {
		return ErrInvalidQuantity
	}

	if _, err := s.eventRepo.FindByID(ctx, reservation.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("load event: %w", err)
	}

	reservation.Status = models.ReservationPending
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListByEvent(ctx context.Context, eventID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	return s.reservationRepo.FindByEventID(ctx, eventID, status)
}

// VoidReservation cancels a reservation that was never approved. Approved
// and already-voided reservations are terminal.
func (s *reservationService) VoidReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var voided *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation: %w", err)
		}
		if reservation.Status != models.ReservationPending {
			return ErrInvalidState
		}

		if err := s.reservationRepo.UpdateStatus(ctx, tx, reservation.ID, models.ReservationVoided); err != nil {
			return fmt.Errorf("void reservation: %w", err)
		}

		reservation.Status = models.ReservationVoided
		voided = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}
	return voided, nil
}
