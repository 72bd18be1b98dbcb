package settings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Source первичный источник настроек (репозиторий мерчантов)
type Source interface {
	GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
