package database

import (
	"log"

	"github.com/kkkukkk/kin-booking-sub001/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Event{},
		&models.Reservation{},
		&models.Ticket{},
		&models.TransferRecord{},
		&models.EntrySession{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: a ticket number is held by at most one
	// non-retired ticket per event. Cancelled numbers become reusable;
	// a transferred ticket's number continues in its reissued successor.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ticket_number_held
		ON tickets (event_id, ticket_number)
		WHERE status IN ('active', 'cancel_requested', 'used')
	`)

	return db
}
