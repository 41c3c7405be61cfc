package adaptor

import (
	"net/http"

	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	log *zap.Logger
}

func NewUserHandler(log *zap.Logger) *UserHandler {
	return &UserHandler{
		log: log.With(zap.String("handler", "user")),
	}
}

// Me handles GET /api/users/me (bearer)
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	email, _ := utils.GetEmailFromContext(r.Context())

	utils.ResponseSuccess(w, response.UserResponse{ID: userID, Email: email})
}
