package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DayHours are business hours for a single weekday.
type DayHours struct {
	IsOpen bool
	Open   types.TimeOfDay
	Close  types.TimeOfDay
}

// Interval returns [Open, Close).
func (d DayHours) Interval() Interval {
	return Interval{Start: d.Open, End: d.Close}
}

// MerchantSettings is the normalized form of the merchant settings blob.
// Only the storage layer builds it; the engine never sees raw JSON.
type MerchantSettings struct {
	MerchantID                   int64
	BusinessHours                map[time.Weekday]DayHours
	HasBusinessHours             bool
	MinimumBookingNoticeMinutes  int
	ShowOnlyRosteredStaffDefault bool
}

// HoursFor returns the business hours of weekday. ok is false when the day is missing or closed.
func (s *MerchantSettings) HoursFor(weekday time.Weekday) (Interval, bool) {
	if s == nil || s.BusinessHours == nil {
		return Interval{}, false
	}
	day, exists := s.BusinessHours[weekday]
	if !exists || !day.IsOpen || day.Interval().IsEmpty() {
		return Interval{}, false
	}
	return day.Interval(), true
}
