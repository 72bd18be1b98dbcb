package evaluate_slot

import "time"

// Сообщения результата. Каждое соответствует своему шагу проверки.
const (
	MessageUnconstrained        = "Capacity is not constrained: merchant business hours are not configured."
	MessageHolidayClosed        = "Business is closed on this day for a holiday."
	MessageClosed               = "Business is closed on this day"
	MessageNoRosteredStaff      = "No staff members are rostered for this time."
	MessageAllStaffBooked       = "All staff members are already booked for this time."
	MessageNoUnassignedCapacity = "No unassigned capacity remaining for this time."
	MessageCapacityAvailable    = "Capacity available."
)

// Исходы оценки для метрик
const (
	OutcomeUnconstrained        = "unconstrained"
	OutcomeHoliday              = "holiday"
	OutcomeClosed               = "closed"
	OutcomeNoRosteredStaff      = "no_rostered_staff"
	OutcomeAllStaffBooked       = "all_staff_booked"
	OutcomeNoUnassignedCapacity = "no_unassigned_capacity"
	OutcomeAvailable            = "available"
)

// Request модель запроса на оценку вместимости окна
type Request struct {
	MerchantID      int64
	LocationID      *int64
	StartTime       time.Time
	EndTime         time.Time
	Timezone        string // IANA, пусто - UTC
	LockMerchantRow bool   // взять FOR UPDATE на строку мерчанта до остальных чтений
}

// Response модель результата оценки
type Response struct {
	HasCapacity             bool
	RosteredStaffCount      int
	AssignedBookingsCount   int
	UnassignedBookingsCount int
	RemainingCapacity       int
	Unconstrained           bool
	Message                 string

	outcome string
}
