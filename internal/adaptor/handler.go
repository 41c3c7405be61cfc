package adaptor

import (
	"errors"
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Venue   *VenueHandler
	Booking *BookingHandler
	Event   *EventHandler
	Admin   *AdminHandler
	User    *UserHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Venue:   NewVenueHandler(service.Venue, log),
		Booking: NewBookingHandler(service.Booking, log),
		Event:   NewEventHandler(service.Event, log),
		Admin:   NewAdminHandler(service.Admin, config.Admin, log),
		User:    NewUserHandler(log),
	}
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeServiceError maps usecase errors to status codes and logs them at a matching level.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Any("fields", validationErr.Fields),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Info(operation+" failed - venue unavailable",
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, usecase.ErrConflict.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Booking has already been decided", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
