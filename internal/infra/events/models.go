package events

import "time"

const EventTypeBlockConflicts = "staff_block.conflicts"

// BlockConflictsEvent публикуется, когда новая блокировка перекрывает будущие активные записи
type BlockConflictsEvent struct {
	EventID               string    `json:"eventId"`
	MerchantID            int64     `json:"merchantId"`
	StaffID               int64     `json:"staffId"`
	LocationID            *int64    `json:"locationId,omitempty"`
	BlockID               int64     `json:"blockId"`
	BlockStart            time.Time `json:"blockStart"`
	BlockEnd              time.Time `json:"blockEnd"`
	ConflictingBookingIDs []int64   `json:"conflictingBookingIds"`
	OccurredAt            time.Time `json:"occurredAt"`
}
