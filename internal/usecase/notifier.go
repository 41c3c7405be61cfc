package usecase

import (
	"context"

	"venue-booking/internal/data/entity"
)

// BookingNotifier is told about booking lifecycle changes after they are stored.
// Delivery is best effort and never fails the request that triggered it.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, booking *entity.Booking, venue *entity.Venue)
	BookingDecided(ctx context.Context, booking *entity.Booking, venue *entity.Venue)
}

type noopNotifier struct{}

func (noopNotifier) BookingCreated(context.Context, *entity.Booking, *entity.Venue) {}
func (noopNotifier) BookingDecided(context.Context, *entity.Booking, *entity.Venue) {}
