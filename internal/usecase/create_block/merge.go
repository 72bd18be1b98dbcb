package create_block

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// mergeBounds возвращает [min начал, max концов] новой и существующих блокировок
func mergeBounds(start, end time.Time, existing []*domain.StaffAvailabilityBlock) (time.Time, time.Time) {
	for _, b := range existing {
		if b.StartTime.Before(start) {
			start = b.StartTime
		}
		if b.EndTime.After(end) {
			end = b.EndTime
		}
	}
	return start, end
}

// mergeReason выбирает причину: из запроса, иначе первую непустую из существующих
func mergeReason(requested *string, existing []*domain.StaffAvailabilityBlock) *string {
	if r := nonEmpty(requested); r != nil {
		return r
	}
	for _, b := range existing {
		if r := nonEmpty(b.Reason); r != nil {
			return r
		}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
