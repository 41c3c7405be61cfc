package request

type VenueRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Location    string   `json:"location" validate:"required,max=200"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	IsActive    *bool    `json:"is_active,omitempty"`
	Description string   `json:"description" validate:"max=2000"`
	Amenities   []string `json:"amenities" validate:"omitempty,dive,required,max=100"`
}
