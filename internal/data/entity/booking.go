package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// ErrInvalidTransition is returned when a booking leaves a terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusApproved || s == BookingStatusRejected
}

// CanTransitionTo only allows pending -> approved and pending -> rejected.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusPending && next.Terminal()
}

// Blocking reports whether a booking in this status occupies its slot.
// Pending requests block on purpose: the first request wins the conflict check.
func (s BookingStatus) Blocking() bool {
	return s != BookingStatusRejected
}

type Booking struct {
	Base
	UserID               string        `db:"user_id"`
	CompanyName          string        `db:"company_name"`
	ContactName          string        `db:"contact_name"`
	ContactPhone         string        `db:"contact_phone"`
	ContactEmail         string        `db:"contact_email"`
	VenueID              uuid.UUID     `db:"venue_id"`
	EventDate            string        `db:"event_date"` // YYYY-MM-DD
	StartTime            string        `db:"start_time"` // HH:MM
	EndTime              string        `db:"end_time"`   // HH:MM
	EventTitle           string        `db:"event_title"`
	EventDescription     *string       `db:"event_description"`
	IsPublic             bool          `db:"is_public"`
	IsFree               bool          `db:"is_free"`
	RequiresRegistration bool          `db:"requires_registration"`
	ExpectedAttendees    *int          `db:"expected_attendees"`
	ContractInfo         *string       `db:"contract_info"`
	Status               BookingStatus `db:"status"`
	RejectionReason      *string       `db:"rejection_reason"`
	ApprovedBy           *string       `db:"approved_by"`
	ApprovedAt           *time.Time    `db:"approved_at"`
}

// Approve moves a pending booking to approved and stamps the approver.
func (b *Booking) Approve(approver string, at time.Time) error {
	if !b.Status.CanTransitionTo(BookingStatusApproved) {
		return fmt.Errorf("booking %s is %s: %w", b.ID, b.Status, ErrInvalidTransition)
	}
	b.Status = BookingStatusApproved
	b.ApprovedBy = &approver
	b.ApprovedAt = &at
	b.RejectionReason = nil
	b.UpdatedAt = at
	return nil
}

// Reject moves a pending booking to rejected. An empty reason is stored as nil.
func (b *Booking) Reject(reason string, at time.Time) error {
	if !b.Status.CanTransitionTo(BookingStatusRejected) {
		return fmt.Errorf("booking %s is %s: %w", b.ID, b.Status, ErrInvalidTransition)
	}
	b.Status = BookingStatusRejected
	if reason != "" {
		b.RejectionReason = &reason
	} else {
		b.RejectionReason = nil
	}
	b.ApprovedBy = nil
	b.ApprovedAt = nil
	b.UpdatedAt = at
	return nil
}
