package adaptor

import (
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// GetPublicEvents handles GET /api/events/public (public)
func (h *EventHandler) GetPublicEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetPublicEvents(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get public events")
		return
	}

	utils.ResponseSuccess(w, events)
}
