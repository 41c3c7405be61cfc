package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/cache"

	"go.uber.org/zap"
)

const eventsCachePrefix = "events:"

type EventService interface {
	GetPublicEvents(ctx context.Context) ([]response.PublicEventResponse, error)
}

type eventService struct {
	repo  *repository.Repository
	cache cache.Cache
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger
}

func NewEventService(repo *repository.Repository, c cache.Cache, loc *time.Location, log *zap.Logger) EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &eventService{
		repo:  repo,
		cache: c,
		loc:   loc,
		now:   time.Now,
		log:   log.With(zap.String("service", "event")),
	}
}

// GetPublicEvents lists approved public bookings from today onwards, today being
// the calendar date in the configured timezone.
func (s *eventService) GetPublicEvents(ctx context.Context) ([]response.PublicEventResponse, error) {
	today := s.now().In(s.loc).Format(time.DateOnly)
	key := eventsCachePrefix + "public:" + today

	var cached []response.PublicEventResponse
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Public events cache read failed", zap.Error(err))
	}

	bookings, err := s.repo.Booking.FindPublicApproved(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("get public events: %w", err)
	}
	venues, err := venueIndex(ctx, s.repo.Venue)
	if err != nil {
		return nil, err
	}

	events := make([]response.PublicEventResponse, 0, len(bookings))
	for _, b := range bookings {
		events = append(events, response.PublicEventToResponse(b, venues[b.VenueID]))
	}

	if err := s.cache.Set(ctx, key, events); err != nil {
		s.log.Warn("Public events cache write failed", zap.Error(err))
	}
	return events, nil
}
