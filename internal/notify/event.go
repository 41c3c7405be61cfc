package notify

import (
	"time"

	"venue-booking/internal/data/entity"
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
)

// BookingEvent is the message body published for every booking lifecycle change.
type BookingEvent struct {
	Type            string               `json:"type"`
	BookingID       string               `json:"booking_id"`
	UserID          string               `json:"user_id"`
	VenueID         string               `json:"venue_id"`
	VenueName       string               `json:"venue_name,omitempty"`
	EventDate       string               `json:"event_date"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	EventTitle      string               `json:"event_title"`
	IsPublic        bool                 `json:"is_public"`
	Status          entity.BookingStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time            `json:"occurred_at"`
}

func newBookingEvent(eventType string, b *entity.Booking, venue *entity.Venue) BookingEvent {
	ev := BookingEvent{
		Type:       eventType,
		BookingID:  b.ID.String(),
		UserID:     b.UserID,
		VenueID:    b.VenueID.String(),
		EventDate:  b.EventDate,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		EventTitle: b.EventTitle,
		IsPublic:   b.IsPublic,
		Status:     b.Status,
		OccurredAt: b.UpdatedAt.UTC(),
	}
	if venue != nil {
		ev.VenueName = venue.Name
	}
	if b.RejectionReason != nil {
		ev.RejectionReason = *b.RejectionReason
	}
	return ev
}

func decisionEventType(status entity.BookingStatus) string {
	if status == entity.BookingStatusApproved {
		return EventBookingApproved
	}
	return EventBookingRejected
}
