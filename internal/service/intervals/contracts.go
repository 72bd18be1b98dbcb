package intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SettingsRepository источник нормализованных настроек мерчанта
type SettingsRepository interface {
	GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error)
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	ListByDate(ctx context.Context, merchantID int64, date time.Time) ([]*domain.MerchantHoliday, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActiveByID(ctx context.Context, merchantID, staffID int64) (*domain.Staff, error)
	GetSchedules(ctx context.Context, merchantID, staffID int64, weekday time.Weekday) ([]domain.StaffSchedule, error)
	GetOverride(ctx context.Context, merchantID, staffID int64, date time.Time) (*domain.ScheduleOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
