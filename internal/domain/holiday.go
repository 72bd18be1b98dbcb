package domain

import "time"

// MerchantHoliday closes the merchant for the whole date when IsDayOff is set.
type MerchantHoliday struct {
	ID         int64
	MerchantID int64
	Date       time.Time
	IsDayOff   bool
	Name       string
	Source     string
	State      *string
}

// AnyDayOff reports whether at least one holiday row closes the business.
func AnyDayOff(holidays []*MerchantHoliday) bool {
	for _, h := range holidays {
		if h != nil && h.IsDayOff {
			return true
		}
	}
	return false
}
