package notify

import (
	"context"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/usecase"
)

// Multi fans a booking change out to every configured notifier.
type Multi []usecase.BookingNotifier

func (m Multi) BookingCreated(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	for _, n := range m {
		n.BookingCreated(ctx, booking, venue)
	}
}

func (m Multi) BookingDecided(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	for _, n := range m {
		n.BookingDecided(ctx, booking, venue)
	}
}
