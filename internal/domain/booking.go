package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
	StatusNoShow     BookingStatus = "NO_SHOW"
	StatusDeleted    BookingStatus = "DELETED"
)

// Booking is an appointment that occupies a staff member (or shared capacity when ProviderID is nil)
type Booking struct {
	ID         int64
	MerchantID int64
	LocationID *int64
	ProviderID *int64 // nil = unassigned booking
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsUnassigned returns true if no staff member was chosen for the booking
func (b *Booking) IsUnassigned() bool {
	return b.ProviderID == nil
}

// Overlaps reports whether the booking intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return TimeRangesOverlap(b.StartTime, b.EndTime, start, end)
}

// IsActive returns false for statuses that never block a slot
func (s BookingStatus) IsActive() bool {
	for _, inactive := range InactiveStatuses {
		if s == inactive {
			return false
		}
	}
	return true
}

// BookingsFilter выборка бронирований, пересекающих окно [From, To)
type BookingsFilter struct {
	MerchantID      int64     // Обязательный параметр
	From            time.Time // Начало окна
	To              time.Time // Конец окна (не включая)
	LocationID      *int64    // Фильтр по локации (nil - все локации)
	ProviderIDs     []int64   // Фильтр по исполнителям (nil - любые, включая неназначенные)
	IncludeInactive bool      // Включать ли отменённые, no-show и удалённые
}
