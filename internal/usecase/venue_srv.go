package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/cache"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const venuesCacheKey = "venues:active"

type VenueService interface {
	// Public
	GetActiveVenues(ctx context.Context) ([]response.VenueResponse, error)

	// Admin
	CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error)
	UpdateVenue(ctx context.Context, venueID string, req *request.VenueRequest) (*response.VenueResponse, error)

	// SeedDefaults inserts the default catalog when no venue exists yet.
	SeedDefaults(ctx context.Context) (int, error)
}

type venueService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewVenueService(repo *repository.Repository, c cache.Cache, log *zap.Logger) VenueService {
	return &venueService{
		repo:  repo,
		cache: c,
		now:   time.Now,
		log:   log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetActiveVenues(ctx context.Context) ([]response.VenueResponse, error) {
	var cached []response.VenueResponse
	err := s.cache.Get(ctx, venuesCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Venue cache read failed", zap.Error(err))
	}

	venues, err := s.repo.Venue.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("get venues: %w", err)
	}

	result := make([]response.VenueResponse, 0, len(venues))
	for _, v := range venues {
		result = append(result, response.VenueToResponse(v))
	}

	if err := s.cache.Set(ctx, venuesCacheKey, result); err != nil {
		s.log.Warn("Venue cache write failed", zap.Error(err))
	}
	return result, nil
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	now := s.now()
	venue := &entity.Venue{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		IsActive:    req.IsActive == nil || *req.IsActive,
		Description: req.Description,
		Amenities:   req.Amenities,
	}

	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created", zap.String("venue_id", venue.ID.String()), zap.String("name", venue.Name))
	s.invalidate(ctx)

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update venue validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find venue: %w", err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}

	venue.Name = req.Name
	venue.Location = req.Location
	venue.Capacity = req.Capacity
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}
	venue.Description = req.Description
	venue.Amenities = req.Amenities
	venue.UpdatedAt = s.now()

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}

	s.log.Info("Venue updated", zap.String("venue_id", venueID))
	s.invalidate(ctx)

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Venue.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed venues: %w", err)
	}
	if count > 0 {
		s.log.Info("Venues already present, skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	now := s.now()
	for _, v := range defaultVenues {
		venue := v
		venue.Base = entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
		venue.Amenities = append([]string(nil), v.Amenities...)
		if err := s.repo.Venue.Create(ctx, &venue); err != nil {
			return 0, fmt.Errorf("seed venue %s: %w", venue.Name, err)
		}
		s.log.Info("Seeded venue", zap.String("venue_id", venue.ID.String()), zap.String("name", venue.Name))
	}

	s.invalidate(ctx)
	return len(defaultVenues), nil
}

// venue names are embedded in cached event listings too
func (s *venueService) invalidate(ctx context.Context) {
	for _, prefix := range []string{venuesCacheKey, eventsCachePrefix} {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.log.Warn("Cache invalidation failed", zap.Error(err), zap.String("prefix", prefix))
		}
	}
}

var defaultVenues = []entity.Venue{
	{
		Name:        "Auditório Principal",
		Location:    "Bloco A - 1º Andar",
		Capacity:    200,
		IsActive:    true,
		Description: "Auditório principal da UNIMAR com sistema de som e projeção completo",
		Amenities:   []string{"Sistema de som", "Projeção", "Ar condicionado", "Palco", "Microfones"},
	},
	{
		Name:        "Sala de Conferências",
		Location:    "Bloco B - 2º Andar",
		Capacity:    50,
		IsActive:    true,
		Description: "Sala de conferências equipada para reuniões e apresentações",
		Amenities:   []string{"TV 55\"", "Sistema de som", "Ar condicionado", "Mesa de reunião"},
	},
	{
		Name:        "Anfiteatro",
		Location:    "Bloco C - Térreo",
		Capacity:    150,
		IsActive:    true,
		Description: "Anfiteatro com arquibancadas e palco para eventos maiores",
		Amenities:   []string{"Palco", "Arquibancadas", "Sistema de som", "Iluminação cênica", "Ar condicionado"},
	},
	{
		Name:        "Laboratório de Informática",
		Location:    "Bloco D - 3º Andar",
		Capacity:    30,
		IsActive:    true,
		Description: "Laboratório com computadores para workshops e treinamentos",
		Amenities:   []string{"30 computadores", "Projetor", "Ar condicionado", "Internet"},
	},
	{
		Name:        "Sala de Eventos",
		Location:    "Bloco E - 1º Andar",
		Capacity:    80,
		IsActive:    true,
		Description: "Sala versátil para eventos corporativos e sociais",
		Amenities:   []string{"Sistema de som", "Projeção", "Ar condicionado", "Espaço para coffee break"},
	},
}
