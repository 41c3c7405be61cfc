package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	// GET /api/users/me - Identity carried by the bearer token
	r.With(auth).Get("/api/users/me", userHandler.Me)
}
