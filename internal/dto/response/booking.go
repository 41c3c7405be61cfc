package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

const (
	UnknownVenueName     = "Venue not found"
	UnknownVenueLocation = "Location unavailable"
)

type BookingResponse struct {
	ID                   string               `json:"id"`
	UserID               string               `json:"user_id"`
	CompanyName          string               `json:"company_name"`
	ContactName          string               `json:"contact_name"`
	ContactPhone         string               `json:"contact_phone"`
	ContactEmail         string               `json:"contact_email"`
	VenueID              string               `json:"venue_id"`
	VenueName            string               `json:"venue_name"`
	VenueLocation        string               `json:"venue_location"`
	EventDate            string               `json:"event_date"`
	StartTime            string               `json:"start_time"`
	EndTime              string               `json:"end_time"`
	EventTitle           string               `json:"event_title"`
	EventDescription     *string              `json:"event_description,omitempty"`
	IsPublic             bool                 `json:"is_public"`
	IsFree               bool                 `json:"is_free"`
	RequiresRegistration bool                 `json:"requires_registration"`
	ExpectedAttendees    *int                 `json:"expected_attendees,omitempty"`
	ContractInfo         *string              `json:"contract_info,omitempty"`
	Status               entity.BookingStatus `json:"status"`
	RejectionReason      *string              `json:"rejection_reason,omitempty"`
	ApprovedBy           *string              `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time           `json:"approved_at,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// PublicEventResponse omits requester contact details.
type PublicEventResponse struct {
	ID                   string  `json:"id"`
	VenueID              string  `json:"venue_id"`
	VenueName            string  `json:"venue_name"`
	VenueLocation        string  `json:"venue_location"`
	EventDate            string  `json:"event_date"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	EventTitle           string  `json:"event_title"`
	EventDescription     *string `json:"event_description,omitempty"`
	CompanyName          string  `json:"company_name"`
	IsFree               bool    `json:"is_free"`
	RequiresRegistration bool    `json:"requires_registration"`
	ExpectedAttendees    *int    `json:"expected_attendees,omitempty"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// BookingToResponse attaches venue details, falling back to placeholders when the venue is gone.
func BookingToResponse(b *entity.Booking, venue *entity.Venue) BookingResponse {
	name, location := venueLabels(venue)
	return BookingResponse{
		ID:                   b.ID.String(),
		UserID:               b.UserID,
		CompanyName:          b.CompanyName,
		ContactName:          b.ContactName,
		ContactPhone:         b.ContactPhone,
		ContactEmail:         b.ContactEmail,
		VenueID:              b.VenueID.String(),
		VenueName:            name,
		VenueLocation:        location,
		EventDate:            b.EventDate,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		EventTitle:           b.EventTitle,
		EventDescription:     b.EventDescription,
		IsPublic:             b.IsPublic,
		IsFree:               b.IsFree,
		RequiresRegistration: b.RequiresRegistration,
		ExpectedAttendees:    b.ExpectedAttendees,
		ContractInfo:         b.ContractInfo,
		Status:               b.Status,
		RejectionReason:      b.RejectionReason,
		ApprovedBy:           b.ApprovedBy,
		ApprovedAt:           b.ApprovedAt,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func PublicEventToResponse(b *entity.Booking, venue *entity.Venue) PublicEventResponse {
	name, location := venueLabels(venue)
	return PublicEventResponse{
		ID:                   b.ID.String(),
		VenueID:              b.VenueID.String(),
		VenueName:            name,
		VenueLocation:        location,
		EventDate:            b.EventDate,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		EventTitle:           b.EventTitle,
		EventDescription:     b.EventDescription,
		CompanyName:          b.CompanyName,
		IsFree:               b.IsFree,
		RequiresRegistration: b.RequiresRegistration,
		ExpectedAttendees:    b.ExpectedAttendees,
	}
}

func venueLabels(venue *entity.Venue) (string, string) {
	if venue == nil {
		return UnknownVenueName, UnknownVenueLocation
	}
	return venue.Name, venue.Location
}
