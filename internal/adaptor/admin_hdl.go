package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	config  utils.AdminConfig
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, config utils.AdminConfig, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Login(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "admin login")
		return
	}

	http.SetCookie(w, h.sessionCookie(middleware.AdminCookieValue, int(h.service.SessionDuration().Seconds())))
	utils.ResponseSuccess(w, response.SuccessResponse{Success: true})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	utils.ResponseSuccess(w, response.SuccessResponse{Success: true})
}

// Status handles GET /api/admin/status
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, response.AdminStatusResponse{IsAuthenticated: middleware.IsAdmin(r)})
}

func (h *AdminHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.config.CookieSecure {
		// the SPA may live on another origin
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: sameSite,
	}
}
