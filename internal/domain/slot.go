package domain

import "time"

// Slot is one candidate appointment start. EndTime excludes padding.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// DurationMinutes returns the customer-visible length of the slot
func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
