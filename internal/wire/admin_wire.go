package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, loginLimit func(http.Handler) http.Handler) {
	// POST /api/admin/login - Shared credential login, sets the admin_session cookie
	r.With(loginLimit).Post("/api/admin/login", adminHandler.Login)

	// POST /api/admin/logout - Clears the admin_session cookie
	r.Post("/api/admin/logout", adminHandler.Logout)

	// GET /api/admin/status - Whether the admin cookie is present
	r.Get("/api/admin/status", adminHandler.Status)
}
