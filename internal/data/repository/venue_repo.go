package repository

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Venue, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, venue *entity.Venue) error
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, location, capacity, is_active, description, amenities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Location,
		venue.Capacity,
		venue.IsActive,
		venue.Description,
		amenitiesOrEmpty(venue.Amenities),
		venue.CreatedAt,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", venue.Name),
		)
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT id, name, location, capacity, is_active, description, amenities, created_at, updated_at
		FROM venues
		WHERE id = $1
	`

	venue, err := scanVenue(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by ID %s: %w", id, err)
	}

	return venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Venue, error) {
	query := `
		SELECT id, name, location, capacity, is_active, description, amenities, created_at, updated_at
		FROM venues
		WHERE ($1 = FALSE OR is_active)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to find all venues",
			zap.Error(err),
			zap.Bool("active_only", activeOnly),
		)
		return nil, fmt.Errorf("find all venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

func (r *venueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		r.log.Error("Failed to count venues", zap.Error(err))
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return count, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, location = $3, capacity = $4, is_active = $5,
		    description = $6, amenities = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Location,
		venue.Capacity,
		venue.IsActive,
		venue.Description,
		amenitiesOrEmpty(venue.Amenities),
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		return fmt.Errorf("update venue %s: %w", venue.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s not found", venue.ID)
	}

	return nil
}

func scanVenue(row pgx.Row) (*entity.Venue, error) {
	var venue entity.Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Location,
		&venue.Capacity,
		&venue.IsActive,
		&venue.Description,
		&venue.Amenities,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func amenitiesOrEmpty(amenities []string) []string {
	if amenities == nil {
		return []string{}
	}
	return amenities
}
