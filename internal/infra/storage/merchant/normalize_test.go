package merchant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func hours(open, close string) domain.DayHours {
	return domain.DayHours{
		IsOpen: true,
		Open:   types.MustParseTimeOfDay(open),
		Close:  types.MustParseTimeOfDay(close),
	}
}

func TestNormalizeSettings(t *testing.T) {
	raw := []byte(`{
		"businessHours": {
			"monday":    {"open": "09:00", "close": "18:00", "isOpen": true},
			"TUESDAY":   {"open": "10:00", "close": "16:00"},
			"Wednesday": {"open": "closed", "close": "closed"},
			"thursday":  {"open": "09:00", "close": "18:00", "isOpen": false},
			"friday":    {"open": "18:00", "close": "09:00"},
			"Sat":       {"open": "09:00", "close": "12:00"}
		},
		"minimum_booking_notice_minutes": 120,
		"ShowOnlyRosteredStaffDefault": true
	}`)

	settings, err := NormalizeSettings(7, raw)
	require.NoError(t, err)

	assert.Equal(t, int64(7), settings.MerchantID)
	assert.True(t, settings.HasBusinessHours)
	assert.Equal(t, 120, settings.MinimumBookingNoticeMinutes)
	assert.True(t, settings.ShowOnlyRosteredStaffDefault)

	assert.Equal(t, hours("09:00", "18:00"), settings.BusinessHours[time.Monday])
	assert.Equal(t, hours("10:00", "16:00"), settings.BusinessHours[time.Tuesday])
	assert.False(t, settings.BusinessHours[time.Wednesday].IsOpen)
	assert.False(t, settings.BusinessHours[time.Thursday].IsOpen)
	assert.False(t, settings.BusinessHours[time.Friday].IsOpen)

	_, ok := settings.BusinessHours[time.Saturday]
	assert.False(t, ok, "abbreviated day names are ignored")
	_, ok = settings.HoursFor(time.Sunday)
	assert.False(t, ok)
}

func TestNormalizeSettings_LowercaseKeyWins(t *testing.T) {
	raw := []byte(`{"businessHours": {
		"MONDAY": {"open": "08:00", "close": "12:00"},
		"monday": {"open": "09:00", "close": "17:00"}
	}}`)

	settings, err := NormalizeSettings(1, raw)
	require.NoError(t, err)
	assert.Equal(t, hours("09:00", "17:00"), settings.BusinessHours[time.Monday])
}

func TestNormalizeSettings_NoBusinessHours(t *testing.T) {
	settings, err := NormalizeSettings(1, []byte(`{"minimumBookingNoticeMinutes": "30"}`))
	require.NoError(t, err)

	assert.False(t, settings.HasBusinessHours)
	assert.Equal(t, 30, settings.MinimumBookingNoticeMinutes)
	assert.False(t, settings.ShowOnlyRosteredStaffDefault)
}

func TestNormalizeSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		wantErr error
	}{
		{name: "nil", raw: nil, wantErr: ErrSettingsNotFound},
		{name: "json null", raw: []byte(" null "), wantErr: ErrSettingsNotFound},
		{name: "broken json", raw: []byte(`{"businessHours":`), wantErr: ErrInvalidSettings},
		{name: "business hours not an object", raw: []byte(`{"businessHours": [1, 2]}`), wantErr: ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeSettings(1, tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
