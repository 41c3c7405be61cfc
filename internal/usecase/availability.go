package usecase

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Slot is a same-day time range in minutes since midnight, end exclusive.
type Slot struct {
	Start int
	End   int
}

func ParseSlot(start, end string) (Slot, error) {
	s, err := utils.ClockMinutes(start)
	if err != nil {
		return Slot{}, err
	}
	e, err := utils.ClockMinutes(end)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: s, End: e}, nil
}

// Overlaps uses half-open intervals, so back-to-back slots never overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && other.Start < s.End
}

// FindConflict returns the first booking that occupies the candidate slot on eventDate.
// Rejected bookings and the excluded id are ignored.
func FindConflict(existing []*entity.Booking, eventDate string, candidate Slot, exclude *uuid.UUID) (*entity.Booking, error) {
	for _, b := range existing {
		if b.EventDate != eventDate || !b.Status.Blocking() {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		slot, err := ParseSlot(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s has a malformed time range: %w", b.ID, err)
		}
		if candidate.Overlaps(slot) {
			return b, nil
		}
	}
	return nil, nil
}

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, venueID uuid.UUID, eventDate, startTime, endTime string, exclude *uuid.UUID) (bool, error)
}

type availabilityChecker struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewAvailabilityChecker(bookings repository.BookingRepository, log *zap.Logger) AvailabilityChecker {
	return &availabilityChecker{
		bookings: bookings,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (c *availabilityChecker) IsAvailable(ctx context.Context, venueID uuid.UUID, eventDate, startTime, endTime string, exclude *uuid.UUID) (bool, error) {
	return isAvailable(ctx, c.bookings, c.log, venueID, eventDate, startTime, endTime, exclude)
}

// isAvailable is shared with booking creation, which runs it against a repository bound to the venue-day lock.
func isAvailable(ctx context.Context, bookings repository.BookingRepository, log *zap.Logger, venueID uuid.UUID, eventDate, startTime, endTime string, exclude *uuid.UUID) (bool, error) {
	candidate, err := ParseSlot(startTime, endTime)
	if err != nil {
		return false, NewValidationError(map[string]string{"start_time": err.Error()})
	}

	existing, err := bookings.FindByVenueAndDate(ctx, venueID, eventDate)
	if err != nil {
		log.Error("Failed to load bookings for availability check",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.String("event_date", eventDate),
		)
		return false, fmt.Errorf("check availability: %w", err)
	}

	conflict, err := FindConflict(existing, eventDate, candidate, exclude)
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	if conflict != nil {
		log.Debug("Slot taken",
			zap.String("venue_id", venueID.String()),
			zap.String("event_date", eventDate),
			zap.String("conflicting_booking_id", conflict.ID.String()),
		)
		return false, nil
	}
	return true, nil
}
