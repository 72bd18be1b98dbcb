package settings

import (
	"context"
	"errors"
	"fmt"

	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
)

// Service сервис чтения нормализованных настроек мерчанта
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки в том виде, в каком их видит движок доступности.
// Отсутствующие или нечитаемые настройки - не ошибка: ответ с Configured=false.
func (s *Service) Get(ctx context.Context, merchantID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for merchant=%d", merchantID)

	if merchantID <= 0 {
		return nil, fmt.Errorf("%w: merchantID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetSettings(ctx, merchantID)
	if err != nil {
		switch {
		case errors.Is(err, merchantRepo.ErrMerchantNotFound):
			s.logger.Warn("Get: merchant id=%d not found", merchantID)
			return nil, ErrMerchantNotFound

		case errors.Is(err, merchantRepo.ErrSettingsNotFound), errors.Is(err, merchantRepo.ErrInvalidSettings):
			s.logger.Warn("Get: merchant id=%d has no usable settings: %v", merchantID, err)
			return models.NotConfigured(merchantID), nil
		}
		s.logger.Error("Get: repository error for merchant=%d: %v", merchantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for merchant=%d, hasBusinessHours=%t",
		merchantID, settings.HasBusinessHours)
	return models.FromDomainSettings(settings), nil
}
