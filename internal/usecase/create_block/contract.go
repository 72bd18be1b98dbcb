package create_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
)

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActiveByID(ctx context.Context, merchantID, staffID int64) (*domain.Staff, error)
}

// BlockRepository интерфейс репозитория блокировок сотрудников
type BlockRepository interface {
	ListTouching(ctx context.Context, merchantID, staffID int64, locationID *int64, start, end time.Time) ([]*domain.StaffAvailabilityBlock, error)
	DeleteByIDs(ctx context.Context, merchantID int64, ids []int64) (int64, error)
	Create(ctx context.Context, block *domain.StaffAvailabilityBlock) (*domain.StaffAvailabilityBlock, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListFutureConflicts(ctx context.Context, merchantID, staffID int64, locationID *int64, from, to, now time.Time) ([]*domain.Booking, error)
}

// EventPublisher публикует событие о конфликтах блокировки
type EventPublisher interface {
	PublishBlockConflicts(ctx context.Context, event events.BlockConflictsEvent) error
}

// Metrics счетчики объединения блокировок
type Metrics interface {
	AddBlocksMerged(merged, conflicts int)
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
