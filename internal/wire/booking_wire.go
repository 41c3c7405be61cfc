package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth func(http.Handler) http.Handler,
	admin func(http.Handler) http.Handler,
	createLimit func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED ROUTES (bearer token) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		// POST /api/bookings - Request a booking (limited per user)
		r.With(createLimit).Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/my - The caller's own bookings
		r.Get("/api/bookings/my", bookingHandler.GetMyBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(admin)

		// GET /api/admin/bookings - Every booking, newest first
		r.Get("/", bookingHandler.GetAllBookings)

		// POST /api/admin/bookings/{id}/action - Approve or reject a pending booking
		r.Post("/{id}/action", bookingHandler.DecideBooking)

		// DELETE /api/admin/bookings/{id} - Remove a booking
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
