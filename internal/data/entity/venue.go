package entity

type Venue struct {
	Base
	Name        string   `db:"name"`
	Location    string   `db:"location"`
	Capacity    int      `db:"capacity"`
	IsActive    bool     `db:"is_active"`
	Description string   `db:"description"`
	Amenities   []string `db:"amenities"`
}
