package blocks

import (
	"context"
	"errors"
	"fmt"

	blockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability_block"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks/models"
)

// Service сервис для просмотра и удаления блокировок сотрудников.
// Создание блокировок идёт через use case create_block, так как требует объединения.
type Service struct {
	blockRepo BlockRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		logger:    logger,
	}
}

// List возвращает блокировки мерчанта, упорядоченные по началу
//
// Примеры использования:
// - Все блокировки сотрудника: List(ctx, &ListRequest{MerchantID: 1, StaffID: &staffID})
// - Блокировки за период: указать From и To
// - Блокировки на локации: указать LocationID
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks for merchant=%d, staff=%v, location=%v",
		req.MerchantID, req.StaffID, req.LocationID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("List: invalid request for merchant=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	blocks, err := s.blockRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for merchant=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks for merchant=%d", len(blocks), req.MerchantID)
	return models.FromDomainBlockList(blocks), nil
}

// Delete удаляет блокировку мерчанта.
// Блокировка другого мерчанта считается несуществующей.
func (s *Service) Delete(ctx context.Context, merchantID, blockID int64) error {
	s.logger.Info("Delete: deleting block id=%d for merchant=%d", blockID, merchantID)

	if merchantID <= 0 || blockID <= 0 {
		s.logger.Warn("Delete: invalid ids merchant=%d, block=%d", merchantID, blockID)
		return fmt.Errorf("%w: merchantID and blockID must be positive", ErrInvalidInput)
	}

	if err := s.blockRepo.Delete(ctx, merchantID, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found for merchant=%d", blockID, merchantID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", blockID)
	return nil
}
