package wire

import (
	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler) {
	// GET /api/events/public - Approved public events from today on
	r.Get("/api/events/public", eventHandler.GetPublicEvents)
}
