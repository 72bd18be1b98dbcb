package evaluate_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MerchantRepository интерфейс репозитория мерчантов
type MerchantRepository interface {
	LockForUpdate(ctx context.Context, merchantID int64) error
	GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error)
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	ListByDate(ctx context.Context, merchantID int64, date time.Time) ([]*domain.MerchantHoliday, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	ListActiveWithSchedules(ctx context.Context, merchantID int64, weekday time.Weekday) ([]*domain.Staff, error)
	ListOverrides(ctx context.Context, merchantID int64, staffIDs []int64, date time.Time) (map[int64]*domain.ScheduleOverride, error)
	ListPlaceholderIDs(ctx context.Context, merchantID int64) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListOverlapping(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок сотрудников
type BlockRepository interface {
	ListOverlapping(ctx context.Context, merchantID int64, staffIDs []int64, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error)
}

// Metrics счетчик исходов оценки
type Metrics interface {
	IncCapacityEvaluation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
