package domain

import "time"

// StaffAvailabilityBlock is an ad-hoc period when a staff member cannot take bookings.
// Blocks are created by merge and deleted by id, never updated in place.
type StaffAvailabilityBlock struct {
	ID         int64
	MerchantID int64
	StaffID    int64
	LocationID *int64
	StartTime  time.Time
	EndTime    time.Time
	Reason     *string
	CreatedAt  time.Time
}

// Overlaps reports whether the block intersects [start, end)
func (b *StaffAvailabilityBlock) Overlaps(start, end time.Time) bool {
	return TimeRangesOverlap(b.StartTime, b.EndTime, start, end)
}

// BlocksFilter выборка блоков мерчанта
type BlocksFilter struct {
	MerchantID int64      // Обязательный параметр
	StaffID    *int64     // Фильтр по сотруднику
	LocationID *int64     // Фильтр по локации
	From       *time.Time // Блоки, заканчивающиеся после From
	To         *time.Time // Блоки, начинающиеся до To
}
