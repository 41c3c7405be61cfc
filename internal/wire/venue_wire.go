package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	bookingHandler *adaptor.BookingHandler,
	admin func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues - Active venues sorted by name
	r.Get("/api/venues", venueHandler.GetVenues)

	// GET /api/venues/{id}/availability - Whether a slot is free
	r.Get("/api/venues/{id}/availability", bookingHandler.CheckAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/venues", func(r chi.Router) {
		r.Use(admin)

		r.Post("/", venueHandler.CreateVenue)
		r.Put("/{id}", venueHandler.UpdateVenue)
	})
}
