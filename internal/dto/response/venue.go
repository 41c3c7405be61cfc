package response

import "venue-booking/internal/data/entity"

type VenueResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	IsActive    bool     `json:"is_active"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

func VenueToResponse(v *entity.Venue) VenueResponse {
	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return VenueResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Location:    v.Location,
		Capacity:    v.Capacity,
		IsActive:    v.IsActive,
		Description: v.Description,
		Amenities:   amenities,
	}
}
