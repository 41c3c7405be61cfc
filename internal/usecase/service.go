package usecase

import (
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/cache"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Venue   VenueService
	Booking BookingService
	Event   EventService
	Admin   AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, c cache.Cache, notifier BookingNotifier, log *zap.Logger) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		Venue:   NewVenueService(repo, c, log),
		Booking: NewBookingService(repo, c, notifier, log),
		Event:   NewEventService(repo, c, config.App.Location(), log),
		Admin:   NewAdminService(config.Admin, log),
	}
}
