package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mapCache is an in-process cache.Cache for exercising the cache paths.
type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.items[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	decided []entity.BookingStatus
}

func (n *recordingNotifier) BookingCreated(_ context.Context, b *entity.Booking, _ *entity.Venue) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
}

func (n *recordingNotifier) BookingDecided(_ context.Context, b *entity.Booking, _ *entity.Venue) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decided = append(n.decided, b.Status)
}

type testEnv struct {
	repo     *repository.Repository
	cache    *mapCache
	notifier *recordingNotifier
	bookings BookingService
	venues   VenueService
	events   *eventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	repo := repository.NewMemoryRepository(log)
	c := newMapCache()
	n := &recordingNotifier{}

	return &testEnv{
		repo:     repo,
		cache:    c,
		notifier: n,
		bookings: NewBookingService(repo, c, n, log),
		venues:   NewVenueService(repo, c, log),
		events:   NewEventService(repo, c, time.UTC, log).(*eventService),
	}
}

func (e *testEnv) addVenue(t *testing.T, name string, capacity int) *entity.Venue {
	t.Helper()
	now := time.Now()
	v := &entity.Venue{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     name,
		Location: "Bloco A",
		Capacity: capacity,
		IsActive: true,
	}
	require.NoError(t, e.repo.Venue.Create(context.Background(), v))
	return v
}

func bookingRequest(venueID uuid.UUID, date, start, end string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		CompanyName:  "ACME",
		ContactName:  "Maria",
		ContactPhone: "+55 14 99999-0000",
		ContactEmail: "maria@example.com",
		VenueID:      venueID.String(),
		EventDate:    date,
		StartTime:    start,
		EndTime:      end,
		EventTitle:   "Workshop",
		IsPublic:     true,
	}
}
