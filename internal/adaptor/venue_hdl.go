package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues (public)
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.service.GetActiveVenues(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, venues)
}

// CreateVenue handles POST /api/admin/venues (admin only)
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create venue")
		return
	}

	utils.ResponseJSON(w, http.StatusCreated, venue)
}

// UpdateVenue handles PUT /api/admin/venues/{id} (admin only)
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.UpdateVenue(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update venue")
		return
	}

	utils.ResponseSuccess(w, venue)
}

func (h *VenueHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
