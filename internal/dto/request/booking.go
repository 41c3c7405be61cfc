package request

type CreateBookingRequest struct {
	CompanyName          string  `json:"company_name" validate:"required,max=200"`
	ContactName          string  `json:"contact_name" validate:"required,max=200"`
	ContactPhone         string  `json:"contact_phone" validate:"required,max=40"`
	ContactEmail         string  `json:"contact_email" validate:"required,email"`
	VenueID              string  `json:"venue_id" validate:"required,uuid"`
	EventDate            string  `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime            string  `json:"start_time" validate:"required,hhmm"`
	EndTime              string  `json:"end_time" validate:"required,hhmm,clockafter=StartTime"`
	EventTitle           string  `json:"event_title" validate:"required,max=200"`
	EventDescription     *string `json:"event_description,omitempty"`
	IsPublic             bool    `json:"is_public"`
	IsFree               bool    `json:"is_free"`
	RequiresRegistration bool    `json:"requires_registration"`
	ExpectedAttendees    *int    `json:"expected_attendees,omitempty" validate:"omitempty,min=1"`
	ContractInfo         *string `json:"contract_info,omitempty"`
}

type BookingActionRequest struct {
	Action          string `json:"action" validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejection_reason,omitempty" validate:"max=1000"`
}

// AvailabilityQuery is read from the query string of GET /api/venues/{id}/availability.
type AvailabilityQuery struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm,clockafter=StartTime"`
}
