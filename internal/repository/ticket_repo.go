package repository

import (
	"context"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, tickets []*models.Ticket) error
	FindByID(ctx context.Context, id string) (*models.Ticket, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Ticket, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error)
	FindByReservation(ctx context.Context, reservationID uint) ([]models.Ticket, error)
	FindActiveByEventAndOwnerForUpdate(ctx context.Context, tx *gorm.DB, eventID uint, ownerID string) ([]models.Ticket, error)
	CountHeld(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	CountActiveForReservation(ctx context.Context, tx *gorm.DB, eventID uint, ownerID string, reservationID uint) (int64, error)
	NumbersInUse(ctx context.Context, tx *gorm.DB, eventID uint) ([]int, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.TicketStatus) error
	UpdateStatusBatch(ctx context.Context, tx *gorm.DB, ids []string, status models.TicketStatus) error
	GetDB() *gorm.DB
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *ticketRepository) CreateBatch(ctx context.Context, tx *gorm.DB, tickets []*models.Ticket) error {
	return tx.WithContext(ctx).Create(tickets).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForUpdate locks the ticket row; status transitions and transfers
// of the same ticket serialize here.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("event_id ASC, ticket_number ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("ticket_number ASC, created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByReservation(ctx context.Context, reservationID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("ticket_number ASC, created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindActiveByEventAndOwnerForUpdate locks every active ticket a user holds
// for an event, for the all-or-nothing bulk cancel-request batch.
func (r *ticketRepository) FindActiveByEventAndOwnerForUpdate(ctx context.Context, tx *gorm.DB, eventID uint, ownerID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND owner_id = ? AND status = ?", eventID, ownerID, models.TicketActive).
		Order("ticket_number ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CountHeld is the inventory ledger: tickets currently counting against
// the event's seat capacity. It is a derived view over ticket rows, never
// a separately maintained counter.
func (r *ticketRepository) CountHeld(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("event_id = ? AND status IN ?", eventID, models.CapacityHeldStatuses).
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountActiveForReservation(ctx context.Context, tx *gorm.DB, eventID uint, ownerID string, reservationID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("event_id = ? AND owner_id = ? AND reservation_id = ? AND status = ?",
			eventID, ownerID, reservationID, models.TicketActive).
		Count(&count).Error
	return count, err
}

// NumbersInUse returns the ticket numbers currently occupied for an event,
// ascending. Cancelled tickets free their number; a transferred ticket's
// number lives on in its reissued successor, so transferred rows are
// excluded to avoid listing the same number twice.
func (r *ticketRepository) NumbersInUse(ctx context.Context, tx *gorm.DB, eventID uint) ([]int, error) {
	var numbers []int
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("event_id = ? AND status IN ?", eventID, []models.TicketStatus{
			models.TicketActive, models.TicketCancelRequested, models.TicketUsed,
		}).
		Order("ticket_number ASC").
		Pluck("ticket_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.TicketStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ticketRepository) UpdateStatusBatch(ctx context.Context, tx *gorm.DB, ids []string, status models.TicketStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}
