package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"9:30", 0, true},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1230", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ClockMinutes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidCPF(t *testing.T) {
	assert.True(t, ValidCPF("52998224725"))
	assert.True(t, ValidCPF("12345678900"))
	assert.False(t, ValidCPF("529.982.247-25"))
	assert.False(t, ValidCPF("5299822472"))
	assert.False(t, ValidCPF("5299822472a"))
	assert.False(t, ValidCPF(""))
}

type slotRequest struct {
	Date      string `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm,clockafter=StartTime"`
}

func TestValidateStruct_TimeRange(t *testing.T) {
	errs := ValidateStruct(slotRequest{Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00"})
	assert.Empty(t, errs)

	errs = ValidateStruct(slotRequest{Date: "2025-06-01", StartTime: "10:00", EndTime: "09:00"})
	assert.Equal(t, "Must be later than start_time", errs["end_time"])

	errs = ValidateStruct(slotRequest{Date: "2025-06-01", StartTime: "10:00", EndTime: "10:00"})
	assert.Contains(t, errs, "end_time")

	errs = ValidateStruct(slotRequest{Date: "01/06/2025", StartTime: "9h", EndTime: "10:00"})
	assert.Contains(t, errs, "event_date")
	assert.Equal(t, "Must be a time of day in HH:MM format", errs["start_time"])
	assert.NotContains(t, errs, "end_time")
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"venue_id":   "This field is required",
		"end_time":   "Must be later than start_time",
		"event_date": "Must match the format 2006-01-02",
	})
	assert.Equal(t, "end_time: Must be later than start_time; event_date: Must match the format 2006-01-02; venue_id: This field is required", got)
	assert.Empty(t, FormatValidationErrors(nil))
}
