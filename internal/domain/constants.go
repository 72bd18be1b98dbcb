package domain

import "math"

// Engine defaults
const (
	DefaultSlotIntervalMinutes = 15
	DefaultMaxRangeDays        = 31
)

// UnlimitedCapacity is reported as remaining capacity when the merchant has no business hours configured.
const UnlimitedCapacity = math.MaxInt32

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые никогда не занимают время
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
	StatusDeleted,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// StatusStrings converts statuses for use in SQL IN clauses.
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
