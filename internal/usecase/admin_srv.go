package usecase

import (
	"context"
	"time"

	"venue-booking/internal/dto/request"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminService interface {
	Login(ctx context.Context, req *request.AdminLoginRequest) error
	SessionDuration() time.Duration
}

type adminService struct {
	config utils.AdminConfig
	log    *zap.Logger
}

func NewAdminService(config utils.AdminConfig, log *zap.Logger) AdminService {
	return &adminService{
		config: config,
		log:    log.With(zap.String("service", "admin")),
	}
}

// Login checks the shared admin password first, then the CPF format.
func (s *adminService) Login(ctx context.Context, req *request.AdminLoginRequest) error {
	if !utils.CheckPasswordHash(req.Password, s.config.PasswordHash) {
		s.log.Warn("Admin login failed: wrong password")
		return ErrInvalidCredentials
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin login validation failed", zap.Any("errors", errs))
		return NewValidationError(errs)
	}

	s.log.Info("Admin logged in")
	return nil
}

func (s *adminService) SessionDuration() time.Duration {
	return time.Duration(s.config.SessionHours) * time.Hour
}
