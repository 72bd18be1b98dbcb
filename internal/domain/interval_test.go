package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func iv(start, end string) Interval {
	return Interval{Start: types.MustParseTimeOfDay(start), End: types.MustParseTimeOfDay(end)}
}

func TestInterval_Intersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval
		want   Interval
		wantOK bool
	}{
		{name: "nested", a: iv("09:00", "18:00"), b: iv("10:00", "16:00"), want: iv("10:00", "16:00"), wantOK: true},
		{name: "partial", a: iv("09:00", "12:00"), b: iv("11:00", "14:00"), want: iv("11:00", "12:00"), wantOK: true},
		{name: "touching is empty", a: iv("09:00", "12:00"), b: iv("12:00", "14:00"), wantOK: false},
		{name: "disjoint", a: iv("09:00", "10:00"), b: iv("11:00", "12:00"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInterval_Predicates(t *testing.T) {
	shift := iv("09:00", "17:00")

	assert.True(t, shift.Covers(iv("09:00", "17:00")))
	assert.False(t, shift.Covers(iv("16:30", "17:30")))

	assert.False(t, shift.Overlaps(iv("17:00", "18:00")))
	assert.True(t, shift.Touches(iv("17:00", "18:00")))
	assert.True(t, shift.Overlaps(iv("16:59", "18:00")))

	assert.Equal(t, 480, shift.Duration())
	assert.Equal(t, 0, iv("12:00", "12:00").Duration())
}

func TestTimeRangesOverlap(t *testing.T) {
	base := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	assert.True(t, TimeRangesOverlap(at(11, 0), at(12, 0), at(11, 30), at(12, 30)))
	assert.True(t, TimeRangesOverlap(at(11, 0), at(12, 0), at(10, 0), at(13, 0)))
	assert.False(t, TimeRangesOverlap(at(11, 0), at(12, 0), at(12, 0), at(13, 0)))
	assert.False(t, TimeRangesOverlap(at(11, 0), at(12, 0), at(9, 0), at(11, 0)))
}

func TestBookingStatus_IsActive(t *testing.T) {
	for _, s := range ActiveStatuses {
		assert.True(t, s.IsActive(), s)
	}
	for _, s := range InactiveStatuses {
		assert.False(t, s.IsActive(), s)
	}
}
