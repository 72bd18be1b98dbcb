package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SettingsRepository источник настроек мерчанта (кэш или репозиторий)
type SettingsRepository interface {
	GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetActiveByID(ctx context.Context, merchantID, serviceID int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActiveByID(ctx context.Context, merchantID, staffID int64) (*domain.Staff, error)
}

// IntervalResolver вычисляет часы работы и смену сотрудника на дату
type IntervalResolver interface {
	ResolveBusinessHours(ctx context.Context, merchantID int64, date time.Time) (domain.Interval, bool, error)
	ResolveStaffRoster(ctx context.Context, merchantID, staffID int64, date time.Time) ([]domain.Interval, bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListByStaffInRange возвращает активные бронирования сотрудника, пересекающие [from, to)
	ListByStaffInRange(ctx context.Context, merchantID, staffID int64, from, to time.Time) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок сотрудников
type BlockRepository interface {
	ListOverlapping(ctx context.Context, merchantID int64, staffIDs []int64, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error)
}

// Metrics счетчики сгенерированных слотов
type Metrics interface {
	AddSlots(available, unavailable int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
