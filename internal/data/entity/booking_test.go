package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusApproved, BookingStatusRejected, false},
		{BookingStatusApproved, BookingStatusPending, false},
		{BookingStatusRejected, BookingStatusApproved, false},
		{BookingStatusRejected, BookingStatusPending, false},
		{BookingStatusPending, BookingStatus("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_Approve(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := &Booking{Status: BookingStatusPending}

	require.NoError(t, b.Approve("admin", at))
	assert.Equal(t, BookingStatusApproved, b.Status)
	require.NotNil(t, b.ApprovedBy)
	assert.Equal(t, "admin", *b.ApprovedBy)
	require.NotNil(t, b.ApprovedAt)
	assert.True(t, at.Equal(*b.ApprovedAt))

	err := b.Reject("too late", at)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, BookingStatusApproved, b.Status)
}

func TestBooking_Reject(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := &Booking{Status: BookingStatusPending}

	require.NoError(t, b.Reject("venue under maintenance", at))
	assert.Equal(t, BookingStatusRejected, b.Status)
	require.NotNil(t, b.RejectionReason)
	assert.Equal(t, "venue under maintenance", *b.RejectionReason)
	assert.Nil(t, b.ApprovedBy)

	assert.ErrorIs(t, b.Approve("admin", at), ErrInvalidTransition)
	assert.ErrorIs(t, b.Reject("again", at), ErrInvalidTransition)
}

func TestBookingStatus_Blocking(t *testing.T) {
	assert.True(t, BookingStatusPending.Blocking())
	assert.True(t, BookingStatusApproved.Blocking())
	assert.False(t, BookingStatusRejected.Blocking())
}
