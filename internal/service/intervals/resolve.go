package intervals

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// MergeMode задаёт, как объединяются несколько строк расписания сотрудника за один день
type MergeMode string

const (
	// MergeBounding одно окно от самого раннего начала до самого позднего конца
	MergeBounding MergeMode = "bounding"
	// MergeUnion точное объединение интервалов, разрывы между сменами сохраняются
	MergeUnion MergeMode = "union"
	// MergeFirst только первая по времени начала строка; неразборчивая строка - сотрудник недоступен
	MergeFirst MergeMode = "first"
)

// ParseMergeMode разбирает значение из конфигурации. Пустая строка означает MergeBounding.
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(s) {
	case "", MergeBounding:
		return MergeBounding, nil
	case MergeUnion:
		return MergeUnion, nil
	case MergeFirst:
		return MergeFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMergeMode, s)
	}
}

// BusinessHours возвращает часы работы мерчанта на дату.
// Выходной праздник закрывает день независимо от настроек.
func BusinessHours(settings *domain.MerchantSettings, holidays []*domain.MerchantHoliday, date time.Time) (domain.Interval, bool) {
	if domain.AnyDayOff(holidays) {
		return domain.Interval{}, false
	}
	return settings.HoursFor(date.Weekday())
}

// Roster возвращает рабочие интервалы сотрудника на день.
//
// Исключение на дату полностью заменяет недельное расписание; граница nil или
// неразборчивая граница означает, что сотрудник недоступен. Без исключения
// используются строки расписания (неразборчивые пропускаются); если строки есть,
// но ни одна не разобралась, сотрудник недоступен. Только при полном отсутствии
// строк работает запасной вариант: при ShowOnlyRosteredStaffDefault сотрудник
// недоступен, иначе его смена совпадает с часами работы мерчанта.
// schedules должны быть упорядочены по времени начала (важно для MergeFirst).
func Roster(
	settings *domain.MerchantSettings,
	business domain.Interval,
	hasBusiness bool,
	schedules []domain.StaffSchedule,
	override *domain.ScheduleOverride,
	mode MergeMode,
) ([]domain.Interval, bool) {
	if override != nil {
		interval, ok := overrideInterval(override)
		if !ok {
			return nil, false
		}
		return []domain.Interval{interval}, true
	}

	if len(schedules) == 0 {
		if settings != nil && settings.ShowOnlyRosteredStaffDefault {
			return nil, false
		}
		if !hasBusiness {
			return nil, false
		}
		return []domain.Interval{business}, true
	}

	if mode == MergeFirst {
		interval, ok := parseBounds(schedules[0].StartTime, schedules[0].EndTime)
		if !ok {
			return nil, false
		}
		return []domain.Interval{interval}, true
	}

	rows := make([]domain.Interval, 0, len(schedules))
	for _, s := range schedules {
		if interval, ok := parseBounds(s.StartTime, s.EndTime); ok {
			rows = append(rows, interval)
		}
	}
	if len(rows) == 0 {
		return nil, false
	}

	if mode == MergeUnion {
		return union(rows), true
	}
	return []domain.Interval{bounding(rows)}, true
}

// EffectiveWindows пересекает часы работы с каждым интервалом смены
func EffectiveWindows(business domain.Interval, roster []domain.Interval) []domain.Interval {
	windows := make([]domain.Interval, 0, len(roster))
	for _, r := range roster {
		if w, ok := business.Intersect(r); ok {
			windows = append(windows, w)
		}
	}
	return windows
}

// AnyCovers проверяет, что хотя бы один интервал целиком покрывает window
func AnyCovers(roster []domain.Interval, window domain.Interval) bool {
	for _, r := range roster {
		if r.Covers(window) {
			return true
		}
	}
	return false
}

func overrideInterval(o *domain.ScheduleOverride) (domain.Interval, bool) {
	if o.StartTime == nil || o.EndTime == nil {
		return domain.Interval{}, false
	}
	return parseBounds(*o.StartTime, *o.EndTime)
}

func parseBounds(start, end string) (domain.Interval, bool) {
	s, err := types.ParseTimeOfDay(start)
	if err != nil {
		return domain.Interval{}, false
	}
	e, err := types.ParseTimeOfDay(end)
	if err != nil {
		return domain.Interval{}, false
	}
	return domain.NewInterval(s, e)
}

func bounding(rows []domain.Interval) domain.Interval {
	result := rows[0]
	for _, r := range rows[1:] {
		if r.Start < result.Start {
			result.Start = r.Start
		}
		if r.End > result.End {
			result.End = r.End
		}
	}
	return result
}

func union(rows []domain.Interval) []domain.Interval {
	sorted := make([]domain.Interval, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := []domain.Interval{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Touches(r) {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
