package usecase

import (
	"context"
	"errors"
	"testing"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		a, b       [2]string
		wantResult bool
	}{
		{"identical", [2]string{"09:00", "10:00"}, [2]string{"09:00", "10:00"}, true},
		{"partial", [2]string{"09:00", "10:00"}, [2]string{"09:30", "10:30"}, true},
		{"contained", [2]string{"08:00", "12:00"}, [2]string{"09:00", "10:00"}, true},
		{"back to back", [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, false},
		{"back to back reversed", [2]string{"10:00", "11:00"}, [2]string{"09:00", "10:00"}, false},
		{"disjoint", [2]string{"09:00", "10:00"}, [2]string{"13:00", "14:00"}, false},
		{"one minute", [2]string{"09:00", "10:01"}, [2]string{"10:00", "11:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseSlot(tt.a[0], tt.a[1])
			require.NoError(t, err)
			b, err := ParseSlot(tt.b[0], tt.b[1])
			require.NoError(t, err)

			assert.Equal(t, tt.wantResult, a.Overlaps(b))
			assert.Equal(t, tt.wantResult, b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestFindConflict(t *testing.T) {
	venueID := uuid.New()
	mk := func(date, start, end string, status entity.BookingStatus) *entity.Booking {
		return &entity.Booking{
			Base:      entity.Base{ID: uuid.New()},
			VenueID:   venueID,
			EventDate: date,
			StartTime: start,
			EndTime:   end,
			Status:    status,
		}
	}
	candidate, err := ParseSlot("09:30", "10:30")
	require.NoError(t, err)

	t.Run("pending blocks", func(t *testing.T) {
		existing := []*entity.Booking{mk("2025-06-01", "09:00", "10:00", entity.BookingStatusPending)}
		got, err := FindConflict(existing, "2025-06-01", candidate, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("approved blocks", func(t *testing.T) {
		existing := []*entity.Booking{mk("2025-06-01", "09:00", "10:00", entity.BookingStatusApproved)}
		got, err := FindConflict(existing, "2025-06-01", candidate, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("rejected never blocks", func(t *testing.T) {
		existing := []*entity.Booking{mk("2025-06-01", "09:30", "10:30", entity.BookingStatusRejected)}
		got, err := FindConflict(existing, "2025-06-01", candidate, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other date ignored", func(t *testing.T) {
		existing := []*entity.Booking{mk("2025-06-02", "09:30", "10:30", entity.BookingStatusApproved)}
		got, err := FindConflict(existing, "2025-06-01", candidate, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("excluded id ignored", func(t *testing.T) {
		b := mk("2025-06-01", "09:30", "10:30", entity.BookingStatusPending)
		got, err := FindConflict([]*entity.Booking{b}, "2025-06-01", candidate, &b.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed stored range is an error", func(t *testing.T) {
		existing := []*entity.Booking{mk("2025-06-01", "9h", "10:00", entity.BookingStatusPending)}
		_, err := FindConflict(existing, "2025-06-01", candidate, nil)
		assert.Error(t, err)
	})
}

type failingBookingRepo struct {
	repository.BookingRepository
}

func (failingBookingRepo) FindByVenueAndDate(context.Context, uuid.UUID, string) ([]*entity.Booking, error) {
	return nil, errors.New("store unreachable")
}

func TestAvailabilityChecker_PropagatesStoreErrors(t *testing.T) {
	checker := NewAvailabilityChecker(failingBookingRepo{}, zap.NewNop())

	available, err := checker.IsAvailable(context.Background(), uuid.New(), "2025-06-01", "09:00", "10:00", nil)
	assert.Error(t, err)
	assert.False(t, available)
}
