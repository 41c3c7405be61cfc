package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"venue-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore backs both in-memory repositories so bookings can see venues.
type memoryStore struct {
	mu       sync.RWMutex
	venues   map[uuid.UUID]*entity.Venue
	bookings map[uuid.UUID]*entity.Booking

	dayMu sync.Mutex
	days  map[string]*sync.Mutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		venues:   make(map[uuid.UUID]*entity.Venue),
		bookings: make(map[uuid.UUID]*entity.Booking),
		days:     make(map[string]*sync.Mutex),
	}
}

func (s *memoryStore) dayLock(key string) *sync.Mutex {
	s.dayMu.Lock()
	defer s.dayMu.Unlock()

	m, ok := s.days[key]
	if !ok {
		m = &sync.Mutex{}
		s.days[key] = m
	}
	return m
}

type memoryVenueRepository struct {
	store *memoryStore
	log   *zap.Logger
}

func (r *memoryVenueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.venues[venue.ID]; exists {
		return fmt.Errorf("create venue %s: duplicate id", venue.ID)
	}
	r.store.venues[venue.ID] = cloneVenue(venue)
	return nil
}

func (r *memoryVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	venue, ok := r.store.venues[id]
	if !ok {
		return nil, nil
	}
	return cloneVenue(venue), nil
}

func (r *memoryVenueRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Venue, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var venues []*entity.Venue
	for _, venue := range r.store.venues {
		if activeOnly && !venue.IsActive {
			continue
		}
		venues = append(venues, cloneVenue(venue))
	}
	sort.Slice(venues, func(i, j int) bool {
		return venues[i].Name < venues[j].Name
	})
	return venues, nil
}

func (r *memoryVenueRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.venues)), nil
}

func (r *memoryVenueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.venues[venue.ID]; !ok {
		return fmt.Errorf("venue %s not found", venue.ID)
	}
	r.store.venues[venue.ID] = cloneVenue(venue)
	return nil
}

type memoryBookingRepository struct {
	store *memoryStore
	log   *zap.Logger
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.venues[booking.VenueID]; !ok {
		r.log.Error("Failed to create booking: unknown venue",
			zap.String("booking_id", booking.ID.String()),
			zap.String("venue_id", booking.VenueID.String()),
		)
		return fmt.Errorf("create booking %s: venue %s does not exist", booking.ID, booking.VenueID)
	}
	if _, exists := r.store.bookings[booking.ID]; exists {
		return fmt.Errorf("create booking %s: duplicate id", booking.ID)
	}
	r.store.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(booking), nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	bookings := r.filter(func(*entity.Booking) bool { return true })
	sortNewestFirst(bookings)
	return bookings, nil
}

func (r *memoryBookingRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	bookings := r.filter(func(b *entity.Booking) bool { return b.UserID == userID })
	sortNewestFirst(bookings)
	return bookings, nil
}

func (r *memoryBookingRepository) FindByVenueAndDate(ctx context.Context, venueID uuid.UUID, eventDate string) ([]*entity.Booking, error) {
	bookings := r.filter(func(b *entity.Booking) bool {
		return b.VenueID == venueID && b.EventDate == eventDate
	})
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime < bookings[j].StartTime
	})
	return bookings, nil
}

func (r *memoryBookingRepository) FindPublicApproved(ctx context.Context, fromDate string) ([]*entity.Booking, error) {
	bookings := r.filter(func(b *entity.Booking) bool {
		return b.IsPublic && b.Status == entity.BookingStatusApproved && b.EventDate >= fromDate
	})
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].EventDate != bookings[j].EventDate {
			return bookings[i].EventDate < bookings[j].EventDate
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
	return bookings, nil
}

func (r *memoryBookingRepository) UpdateDecision(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.bookings[booking.ID]
	if !ok || stored.Status != entity.BookingStatusPending {
		return fmt.Errorf("booking %s is no longer pending: %w", booking.ID, entity.ErrInvalidTransition)
	}

	stored.Status = booking.Status
	stored.RejectionReason = cloneString(booking.RejectionReason)
	stored.ApprovedBy = cloneString(booking.ApprovedBy)
	stored.ApprovedAt = cloneTime(booking.ApprovedAt)
	stored.UpdatedAt = booking.UpdatedAt
	return nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bookings[id]; !ok {
		return false, nil
	}
	delete(r.store.bookings, id)
	return true, nil
}

func (r *memoryBookingRepository) WithinVenueDay(ctx context.Context, venueID uuid.UUID, eventDate string, fn func(repo BookingRepository) error) error {
	lock := r.store.dayLock(venueID.String() + ":" + eventDate)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

func (r *memoryBookingRepository) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Booking
	for _, booking := range r.store.bookings {
		if keep(booking) {
			out = append(out, cloneBooking(booking))
		}
	}
	return out
}

func sortNewestFirst(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func cloneVenue(v *entity.Venue) *entity.Venue {
	c := *v
	if v.Amenities != nil {
		c.Amenities = append([]string(nil), v.Amenities...)
	}
	return &c
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.EventDescription = cloneString(b.EventDescription)
	c.ContractInfo = cloneString(b.ContractInfo)
	c.RejectionReason = cloneString(b.RejectionReason)
	c.ApprovedBy = cloneString(b.ApprovedBy)
	c.ApprovedAt = cloneTime(b.ApprovedAt)
	if b.ExpectedAttendees != nil {
		n := *b.ExpectedAttendees
		c.ExpectedAttendees = &n
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
