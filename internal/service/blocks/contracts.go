package blocks

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок сотрудников
type BlockRepository interface {
	List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.StaffAvailabilityBlock, error)
	Delete(ctx context.Context, merchantID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
