package intervals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
)

// Resolver вычисляет часы работы и смены сотрудников по данным из хранилища
type Resolver struct {
	settingsRepo SettingsRepository
	holidayRepo  HolidayRepository
	staffRepo    StaffRepository
	mode         MergeMode
	logger       Logger
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(
	settingsRepo SettingsRepository,
	holidayRepo HolidayRepository,
	staffRepo StaffRepository,
	mode MergeMode,
	logger Logger,
) *Resolver {
	return &Resolver{
		settingsRepo: settingsRepo,
		holidayRepo:  holidayRepo,
		staffRepo:    staffRepo,
		mode:         mode,
		logger:       logger,
	}
}

// Mode возвращает режим объединения строк расписания
func (r *Resolver) Mode() MergeMode {
	return r.mode
}

// ResolveBusinessHours возвращает часы работы мерчанта на дату.
// Отсутствующие или битые настройки означают закрытый день.
func (r *Resolver) ResolveBusinessHours(ctx context.Context, merchantID int64, date time.Time) (domain.Interval, bool, error) {
	settings, holidays, err := r.loadDay(ctx, merchantID, date)
	if err != nil {
		return domain.Interval{}, false, err
	}

	interval, open := BusinessHours(settings, holidays, date)
	return interval, open, nil
}

// ResolveStaffRoster возвращает смену сотрудника на дату.
// В закрытый день мерчанта сотрудник недоступен.
func (r *Resolver) ResolveStaffRoster(ctx context.Context, merchantID, staffID int64, date time.Time) ([]domain.Interval, bool, error) {
	// 1. Сотрудник должен быть активным сотрудником мерчанта
	if _, err := r.staffRepo.GetActiveByID(ctx, merchantID, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, false, ErrStaffNotFound
		}
		r.logger.Error("ResolveStaffRoster: failed to get staff id=%d: %v", staffID, err)
		return nil, false, fmt.Errorf("%w: ResolveStaffRoster - get staff: %v", ErrInternal, err)
	}

	// 2. Часы работы мерчанта
	settings, holidays, err := r.loadDay(ctx, merchantID, date)
	if err != nil {
		return nil, false, err
	}
	business, open := BusinessHours(settings, holidays, date)
	if !open {
		return nil, false, nil
	}

	// 3. Исключение на дату
	override, err := r.staffRepo.GetOverride(ctx, merchantID, staffID, date)
	if err != nil && !errors.Is(err, staffRepo.ErrOverrideNotFound) {
		r.logger.Error("ResolveStaffRoster: failed to get override staff=%d date=%s: %v",
			staffID, date.Format(domain.DateFormat), err)
		return nil, false, fmt.Errorf("%w: ResolveStaffRoster - get override: %v", ErrInternal, err)
	}

	// 4. Недельное расписание нужно только без исключения
	var schedules []domain.StaffSchedule
	if override == nil {
		schedules, err = r.staffRepo.GetSchedules(ctx, merchantID, staffID, date.Weekday())
		if err != nil {
			r.logger.Error("ResolveStaffRoster: failed to get schedules staff=%d: %v", staffID, err)
			return nil, false, fmt.Errorf("%w: ResolveStaffRoster - get schedules: %v", ErrInternal, err)
		}
	}

	roster, ok := Roster(settings, business, open, schedules, override, r.mode)
	return roster, ok, nil
}

func (r *Resolver) loadDay(ctx context.Context, merchantID int64, date time.Time) (*domain.MerchantSettings, []*domain.MerchantHoliday, error) {
	settings, err := r.settingsRepo.GetSettings(ctx, merchantID)
	if err != nil {
		if !IsSettingsGap(err) {
			r.logger.Error("Resolver: failed to get settings merchant=%d: %v", merchantID, err)
			return nil, nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
		}
		r.logger.Warn("Resolver: merchant id=%d has no usable settings: %v", merchantID, err)
		settings = nil
	}

	holidays, err := r.holidayRepo.ListByDate(ctx, merchantID, date)
	if err != nil {
		r.logger.Error("Resolver: failed to get holidays merchant=%d date=%s: %v",
			merchantID, date.Format(domain.DateFormat), err)
		return nil, nil, fmt.Errorf("%w: get holidays: %v", ErrInternal, err)
	}

	return settings, holidays, nil
}

// IsSettingsGap сообщает, что настройки мерчанта отсутствуют или не разбираются.
// Такой мерчант не считается ошибкой хранилища.
func IsSettingsGap(err error) bool {
	return errors.Is(err, merchantRepo.ErrSettingsNotFound) ||
		errors.Is(err, merchantRepo.ErrInvalidSettings)
}
