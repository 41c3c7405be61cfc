package repository

import (
	"venue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Venue   VenueRepository
	Booking BookingRepository
}

// NewRepository builds the Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Venue:   NewVenueRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

// NewMemoryRepository builds process-local repositories for development and tests.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := newMemoryStore()
	return &Repository{
		Venue:   &memoryVenueRepository{store: store, log: log.With(zap.String("repository", "venue_memory"))},
		Booking: &memoryBookingRepository{store: store, log: log.With(zap.String("repository", "booking_memory"))},
	}
}
