package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "09:30", want: 570},
		{name: "single digit hour", input: "9:05", want: 545},
		{name: "postgres time column", input: "17:00:00", want: 1020},
		{name: "midnight end of day", input: "24:00", want: MinutesPerDay},
		{name: "whitespace", input: " 10:00 ", want: 600},
		{name: "closed literal", input: "closed", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "one digit minutes", input: "10:5", wantErr: true},
		{name: "seconds not zero", input: "10:00:30", wantErr: true},
		{name: "negative", input: "-1:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 3, 10, 15, 47, 0, 0, loc)
	got := MustParseTimeOfDay("10:15").OnDate(date)

	assert.Equal(t, time.Date(2026, 3, 10, 10, 15, 0, 0, loc), got)
}

func TestTimeOfDay_TextRoundTrip(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.UnmarshalText([]byte("08:45")))
	text, err := tod.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "08:45", string(text))
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan([]byte("11:00:00")))
	assert.Equal(t, TimeOfDay(660), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 13, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay(810), tod)

	assert.ErrorIs(t, tod.Scan(nil), ErrInvalidTimeOfDay)
}
