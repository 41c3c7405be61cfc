package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (bearer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking.ID.String(), "Booking request created successfully")
}

// GetMyBookings handles GET /api/bookings/my (bearer)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// CheckAvailability handles GET /api/venues/{id}/availability?date=&start_time=&end_time=
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.AvailabilityQuery{
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}

	available, err := h.service.CheckAvailability(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, response.AvailabilityResponse{Available: available})
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// DecideBooking handles POST /api/admin/bookings/{id}/action (admin only)
func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.BookingActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.DecideBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "decide booking")
		return
	}

	message := "Booking rejected successfully"
	if req.Action == "approve" {
		message = "Booking approved successfully"
	}
	utils.ResponseJSON(w, http.StatusOK, utils.MessageBody{ID: booking.ID, Message: message})
}

// DeleteBooking handles DELETE /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseMessage(w, "Booking deleted successfully")
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
