package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/cache"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminApprover is recorded as approved_by; admins share a single credential.
const AdminApprover = "admin"

type BookingService interface {
	// Authenticated users
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*entity.Booking, error)
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	CheckAvailability(ctx context.Context, venueID string, req *request.AvailabilityQuery) (bool, error)

	// Admin
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	DecideBooking(ctx context.Context, bookingID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	checker  AvailabilityChecker
	cache    cache.Cache
	notifier BookingNotifier
	now      func() time.Time
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, c cache.Cache, notifier BookingNotifier, log *zap.Logger) BookingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &bookingService{
		repo:     repo,
		checker:  NewAvailabilityChecker(repo.Booking, log),
		cache:    c,
		notifier: notifier,
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*entity.Booking, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	venue, err := s.activeVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:               userID,
		CompanyName:          req.CompanyName,
		ContactName:          req.ContactName,
		ContactPhone:         req.ContactPhone,
		ContactEmail:         req.ContactEmail,
		VenueID:              venue.ID,
		EventDate:            req.EventDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		EventTitle:           req.EventTitle,
		EventDescription:     nonEmpty(req.EventDescription),
		IsPublic:             req.IsPublic,
		IsFree:               req.IsFree,
		RequiresRegistration: req.RequiresRegistration,
		ExpectedAttendees:    req.ExpectedAttendees,
		ContractInfo:         nonEmpty(req.ContractInfo),
		Status:               entity.BookingStatusPending,
	}

	// check and insert under the same venue-day lock
	err = s.repo.Booking.WithinVenueDay(ctx, venue.ID, booking.EventDate, func(tx repository.BookingRepository) error {
		available, err := isAvailable(ctx, tx, s.log, venue.ID, booking.EventDate, booking.StartTime, booking.EndTime, nil)
		if err != nil {
			return err
		}
		if !available {
			return ErrConflict
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Info("Booking request conflicts with an existing booking",
				zap.String("venue_id", venue.ID.String()),
				zap.String("event_date", booking.EventDate),
				zap.String("start_time", booking.StartTime),
				zap.String("end_time", booking.EndTime),
			)
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("venue_id", venue.ID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("venue_id", venue.ID.String()),
		zap.String("event_date", booking.EventDate),
	)

	s.notifier.BookingCreated(ctx, booking, venue)
	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}
	return s.withVenues(ctx, bookings)
}

func (s *bookingService) CheckAvailability(ctx context.Context, venueID string, req *request.AvailabilityQuery) (bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return false, NewValidationError(errs)
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return false, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	if venue == nil {
		return false, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}

	return s.checker.IsAvailable(ctx, venue.ID, req.Date, req.StartTime, req.EndTime, nil)
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}
	return s.withVenues(ctx, bookings)
}

func (s *bookingService) DecideBooking(ctx context.Context, bookingID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking action validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch req.Action {
	case "approve":
		err = booking.Approve(AdminApprover, now)
	case "reject":
		err = booking.Reject(req.RejectionReason, now)
	}
	if err != nil {
		s.log.Warn("Rejected status change",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("action", req.Action),
		)
		return nil, err
	}

	if err := s.repo.Booking.UpdateDecision(ctx, booking); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("decide booking: %w", err)
	}

	s.log.Info("Booking decided",
		zap.String("booking_id", bookingID),
		zap.String("status", string(booking.Status)),
	)

	if booking.IsPublic {
		s.invalidateEvents(ctx)
	}

	venue, err := s.repo.Venue.FindByID(ctx, booking.VenueID)
	if err != nil {
		// the decision is stored; a missing venue only degrades the response
		s.log.Warn("Failed to load venue for decided booking", zap.Error(err))
		venue = nil
	}
	s.notifier.BookingDecided(ctx, booking, venue)

	resp := response.BookingToResponse(booking, venue)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	deleted, err := s.repo.Booking.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if !deleted {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	s.invalidateEvents(ctx)
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return booking, nil
}

func (s *bookingService) activeVenue(ctx context.Context, venueID string) (*entity.Venue, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, NewValidationError(map[string]string{"venue_id": "Must be a valid UUID"})
	}
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find venue: %w", err)
	}
	if venue == nil || !venue.IsActive {
		return nil, NewValidationError(map[string]string{"venue_id": "Venue does not exist or is not available for booking"})
	}
	return venue, nil
}

func (s *bookingService) withVenues(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	venues, err := venueIndex(ctx, s.repo.Venue)
	if err != nil {
		return nil, err
	}

	result := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, response.BookingToResponse(b, venues[b.VenueID]))
	}
	return result, nil
}

func (s *bookingService) invalidateEvents(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, eventsCachePrefix); err != nil {
		s.log.Warn("Failed to invalidate public events cache", zap.Error(err))
	}
}

func venueIndex(ctx context.Context, venues repository.VenueRepository) (map[uuid.UUID]*entity.Venue, error) {
	all, err := venues.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("load venues: %w", err)
	}
	index := make(map[uuid.UUID]*entity.Venue, len(all))
	for _, v := range all {
		index[v.ID] = v
	}
	return index, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
