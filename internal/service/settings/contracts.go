package settings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SettingsRepository источник нормализованных настроек (кэш поверх репозитория мерчантов)
type SettingsRepository interface {
	GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
