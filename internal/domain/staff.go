package domain

import "time"

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "ACTIVE"
	StaffStatusInactive StaffStatus = "INACTIVE"
)

// Staff is a member of a merchant's team.
type Staff struct {
	ID         int64
	MerchantID int64
	Name       string
	Status     StaffStatus
	// IsUnassignedPlaceholder marks the pseudo staff member that owns deliberately unassigned bookings.
	// It never counts towards the roster, but its bookings consume capacity.
	IsUnassignedPlaceholder bool
	Schedules               []StaffSchedule
}

// IsActive returns true if the staff member may be rostered
func (s *Staff) IsActive() bool {
	return s.Status == StaffStatusActive
}

// StaffSchedule is a weekly rule. Times stay raw and are parsed by the interval resolver.
type StaffSchedule struct {
	ID        int64
	StaffID   int64
	DayOfWeek time.Weekday
	StartTime string
	EndTime   string
}

// ScheduleOverride replaces the weekly schedule for one date. A nil bound means unavailable.
type ScheduleOverride struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	StartTime *string
	EndTime   *string
}
