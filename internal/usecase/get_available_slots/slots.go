package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// footprint длительность услуги с учетом отступов
type footprint struct {
	duration      int
	paddingBefore int
	paddingAfter  int
}

func (s footprint) total() int {
	return s.paddingBefore + s.duration + s.paddingAfter
}

// generateCandidates шагает по сетке от начала окна.
// Кандидат s подходит, если s - paddingBefore >= open и s + total <= close.
// Вся длительность с отступами откладывается вперёд от показанного начала, поэтому
// paddingBefore учитывается и до s, и после: у услуги 60+15+15 в окне 10:00-16:00
// последний слот начинается в 14:30, а не в 14:45.
func generateCandidates(window domain.Interval, step int, sp footprint) []types.TimeOfDay {
	candidates := make([]types.TimeOfDay, 0)
	for s := window.Start; s.AddMinutes(sp.total()) <= window.End; s = s.AddMinutes(step) {
		if s.AddMinutes(-sp.paddingBefore) < window.Start {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates
}

// hasConflict проверяет пересечение занятого интервала [start - paddingBefore, start + duration + paddingAfter)
// с активными бронированиями и блокировками сотрудника
//
// Примеры (услуга 60 минут без отступов, слот 11:00):
// - бронирование 11:30-12:30 → конфликт
// - бронирование 10:00-11:00 → нет конфликта (граничат)
// - отмененное бронирование 11:00-12:00 → нет конфликта
func hasConflict(start time.Time, sp footprint, bookings []*domain.Booking, blocks []*domain.StaffAvailabilityBlock) bool {
	busyFrom := start.Add(-minutes(sp.paddingBefore))
	busyTo := start.Add(minutes(sp.duration + sp.paddingAfter))

	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(busyFrom, busyTo) {
			return true
		}
	}
	for _, b := range blocks {
		if b.Overlaps(busyFrom, busyTo) {
			return true
		}
	}
	return false
}

// daysBetween количество календарных дней от a до b (дата без времени)
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// dayInLocation переносит календарную дату в часовой пояс мерчанта
func dayInLocation(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
