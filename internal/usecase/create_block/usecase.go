package create_block

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

// UseCase use case создания блокировки сотрудника с объединением соседних блокировок
type UseCase struct {
	txManager    TransactionManager
	staffRepo    StaffRepository
	blockRepo    BlockRepository
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	txManager TransactionManager,
	staffRepo StaffRepository,
	blockRepo BlockRepository,
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		txManager:    txManager,
		staffRepo:    staffRepo,
		blockRepo:    blockRepo,
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает блокировку.
// Удаление пересекающихся блокировок и вставка объединённой выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "CreateBlock")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("merchant.id", req.MerchantID),
		attribute.Int64("staff.id", req.StaffID),
	)

	uc.logger.Info("CreateBlock: merchant=%d, staff=%d, window=%s..%s",
		req.MerchantID, req.StaffID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		result, txErr = uc.createInTx(txCtx, req, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddBlocksMerged(result.MergedCount, len(result.Conflicts))
	uc.logger.Info("CreateBlock: created block id=%d (%s..%s), merged=%d, conflicts=%d",
		result.Block.ID, result.Block.StartTime.Format(time.RFC3339), result.Block.EndTime.Format(time.RFC3339),
		result.MergedCount, len(result.Conflicts))

	// Уведомление о конфликтах после коммита, ошибка не влияет на результат
	if len(result.Conflicts) > 0 {
		uc.publishConflicts(ctx, result, now)
	}

	return result, nil
}

func (uc *UseCase) createInTx(ctx context.Context, req *Request, now time.Time) (*Response, error) {
	// 1. Сотрудник должен быть активным сотрудником мерчанта
	if _, err := uc.staffRepo.GetActiveByID(ctx, req.MerchantID, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBlock: staff id=%d not found for merchant=%d", req.StaffID, req.MerchantID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBlock: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 2. Блокировки, которые пересекаются или касаются новой (строки блокируются)
	touching, err := uc.blockRepo.ListTouching(ctx, req.MerchantID, req.StaffID, req.LocationID, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to get touching blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get touching blocks: %v", ErrInternal, err)
	}

	// 3. Границы и причина объединённой блокировки
	start, end := mergeBounds(req.StartTime, req.EndTime, touching)
	reason := mergeReason(req.Reason, touching)

	// 4. Удаляем старые строки и вставляем одну объединённую
	if len(touching) > 0 {
		ids := make([]int64, 0, len(touching))
		for _, b := range touching {
			ids = append(ids, b.ID)
		}
		if _, err := uc.blockRepo.DeleteByIDs(ctx, req.MerchantID, ids); err != nil {
			uc.logger.Error("CreateBlock: failed to delete merged blocks %v: %v", ids, err)
			return nil, fmt.Errorf("%w: failed to delete merged blocks: %v", ErrInternal, err)
		}
	}

	block, err := uc.blockRepo.Create(ctx, &domain.StaffAvailabilityBlock{
		MerchantID: req.MerchantID,
		StaffID:    req.StaffID,
		LocationID: req.LocationID,
		StartTime:  start,
		EndTime:    end,
		Reason:     reason,
	})
	if err != nil {
		uc.logger.Error("CreateBlock: failed to create block: %v", err)
		return nil, fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
	}

	// 5. Будущие активные бронирования под объединённой блокировкой
	conflicts, err := uc.bookingRepo.ListFutureConflicts(ctx, req.MerchantID, req.StaffID, req.LocationID, start, end, now)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to get conflicting bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get conflicting bookings: %v", ErrInternal, err)
	}

	return &Response{
		Block:       block,
		Warning:     len(conflicts) > 0 && !req.SuppressWarnings,
		Conflicts:   conflicts,
		MergedCount: len(touching),
	}, nil
}

func (uc *UseCase) publishConflicts(ctx context.Context, result *Response, now time.Time) {
	ids := make([]int64, 0, len(result.Conflicts))
	for _, b := range result.Conflicts {
		ids = append(ids, b.ID)
	}

	err := uc.publisher.PublishBlockConflicts(ctx, events.BlockConflictsEvent{
		MerchantID:            result.Block.MerchantID,
		StaffID:               result.Block.StaffID,
		LocationID:            result.Block.LocationID,
		BlockID:               result.Block.ID,
		BlockStart:            result.Block.StartTime,
		BlockEnd:              result.Block.EndTime,
		ConflictingBookingIDs: ids,
		OccurredAt:            now,
	})
	if err != nil {
		uc.logger.Warn("CreateBlock: failed to publish conflicts for block id=%d: %v", result.Block.ID, err)
	}
}
