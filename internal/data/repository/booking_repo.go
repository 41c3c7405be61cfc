package repository

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Business queries
	FindByVenueAndDate(ctx context.Context, venueID uuid.UUID, eventDate string) ([]*entity.Booking, error)
	FindPublicApproved(ctx context.Context, fromDate string) ([]*entity.Booking, error)

	// UpdateDecision persists an approve/reject. It only applies while the stored
	// row is still pending and returns entity.ErrInvalidTransition otherwise.
	UpdateDecision(ctx context.Context, booking *entity.Booking) error

	// WithinVenueDay runs fn while holding an exclusive lock on (venueID, eventDate).
	// Reads and writes through the repository passed to fn are part of the same unit.
	WithinVenueDay(ctx context.Context, venueID uuid.UUID, eventDate string, fn func(repo BookingRepository) error) error
}

const bookingColumns = `
	id, user_id, company_name, contact_name, contact_phone, contact_email,
	venue_id, event_date, start_time, end_time, event_title, event_description,
	is_public, is_free, requires_registration, expected_attendees, contract_info,
	status, rejection_reason, approved_by, approved_at, created_at, updated_at`

type bookingRepository struct {
	db   database.Querier
	pool database.PgxIface // nil when bound to a transaction
	log  *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:   db,
		pool: db,
		log:  log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.CompanyName,
		booking.ContactName,
		booking.ContactPhone,
		booking.ContactEmail,
		booking.VenueID,
		booking.EventDate,
		booking.StartTime,
		booking.EndTime,
		booking.EventTitle,
		booking.EventDescription,
		booking.IsPublic,
		booking.IsFree,
		booking.RequiresRegistration,
		booking.ExpectedAttendees,
		booking.ContractInfo,
		booking.Status,
		booking.RejectionReason,
		booking.ApprovedBy,
		booking.ApprovedAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	bookings, err := r.queryBookings(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all bookings", zap.Error(err))
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	bookings, err := r.queryBookings(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByVenueAndDate(ctx context.Context, venueID uuid.UUID, eventDate string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE venue_id = $1 AND event_date = $2
		ORDER BY start_time
	`

	bookings, err := r.queryBookings(ctx, query, venueID, eventDate)
	if err != nil {
		r.log.Error("Failed to find bookings by venue and date",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.String("event_date", eventDate),
		)
		return nil, fmt.Errorf("find bookings for venue %s on %s: %w", venueID, eventDate, err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindPublicApproved(ctx context.Context, fromDate string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1 AND is_public AND event_date >= $2
		ORDER BY event_date, start_time
	`

	bookings, err := r.queryBookings(ctx, query, entity.BookingStatusApproved, fromDate)
	if err != nil {
		r.log.Error("Failed to find public events",
			zap.Error(err),
			zap.String("from_date", fromDate),
		)
		return nil, fmt.Errorf("find public events from %s: %w", fromDate, err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateDecision(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, rejection_reason = $3, approved_by = $4, approved_at = $5, updated_at = $6
		WHERE id = $1 AND status = $7
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.RejectionReason,
		booking.ApprovedBy,
		booking.ApprovedAt,
		booking.UpdatedAt,
		entity.BookingStatusPending,
	)
	if err != nil {
		r.log.Error("Failed to update booking decision",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is no longer pending: %w", booking.ID, entity.ErrInvalidTransition)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("delete booking %s: %w", id, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) WithinVenueDay(ctx context.Context, venueID uuid.UUID, eventDate string, fn func(repo BookingRepository) error) error {
	lockKey := venueID.String() + ":" + eventDate
	lock := func(q database.Querier) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			r.log.Error("Failed to acquire venue day lock",
				zap.Error(err),
				zap.String("lock_key", lockKey),
			)
			return fmt.Errorf("lock venue %s on %s: %w", venueID, eventDate, err)
		}
		return nil
	}

	// already inside a transaction
	if r.pool == nil {
		if err := lock(r.db); err != nil {
			return err
		}
		return fn(r)
	}

	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lock(tx); err != nil {
			return err
		}
		return fn(&bookingRepository{db: tx, log: r.log})
	})
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CompanyName,
		&booking.ContactName,
		&booking.ContactPhone,
		&booking.ContactEmail,
		&booking.VenueID,
		&booking.EventDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.EventTitle,
		&booking.EventDescription,
		&booking.IsPublic,
		&booking.IsFree,
		&booking.RequiresRegistration,
		&booking.ExpectedAttendees,
		&booking.ContractInfo,
		&booking.Status,
		&booking.RejectionReason,
		&booking.ApprovedBy,
		&booking.ApprovedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if !booking.Status.Valid() {
		return nil, fmt.Errorf("booking %s has unknown status %q", booking.ID, booking.Status)
	}
	return &booking, nil
}
