package evaluate_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/intervals"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case оценки свободной вместимости для бронирования без сотрудника
type UseCase struct {
	txManager    TransactionManager
	merchantRepo MerchantRepository
	holidayRepo  HolidayRepository
	staffRepo    StaffRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	metrics      Metrics
	mode         intervals.MergeMode
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	txManager TransactionManager,
	merchantRepo MerchantRepository,
	holidayRepo HolidayRepository,
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	metrics Metrics,
	mode intervals.MergeMode,
	logger Logger,
) *UseCase {
	return &UseCase{
		txManager:    txManager,
		merchantRepo: merchantRepo,
		holidayRepo:  holidayRepo,
		staffRepo:    staffRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		metrics:      metrics,
		mode:         mode,
		logger:       logger,
	}
}

// Execute выполняет оценку в сериализуемой транзакции.
// Если транзакция уже есть в ctx, оценка выполняется в ней.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "EvaluateSlot")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("merchant.id", req.MerchantID),
		attribute.Bool("lock_merchant_row", req.LockMerchantRow),
	)

	uc.logger.Info("EvaluateSlot: merchant=%d, window=%s..%s, lock=%t",
		req.MerchantID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), req.LockMerchantRow)

	// 1. Валидация входных данных
	loc, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("EvaluateSlot: validation failed: %v", err)
		return nil, err
	}

	var result *Response
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var evalErr error
		result, evalErr = uc.evaluate(txCtx, req, loc)
		return evalErr
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncCapacityEvaluation(result.outcome)
	uc.logger.Info("EvaluateSlot: merchant=%d, hasCapacity=%t, rostered=%d, assigned=%d, unassigned=%d, remaining=%d",
		req.MerchantID, result.HasCapacity, result.RosteredStaffCount,
		result.AssignedBookingsCount, result.UnassignedBookingsCount, result.RemainingCapacity)

	return result, nil
}

func (uc *UseCase) evaluate(ctx context.Context, req *Request, loc *time.Location) (*Response, error) {
	start := req.StartTime.In(loc)
	end := req.EndTime.In(loc)
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	window := domain.Interval{Start: types.TimeOfDayFromTime(start), End: types.TimeOfDayFromTime(end)}
	if endsAtMidnight(start, end) {
		window.End = types.MinutesPerDay
	}

	// 1. Блокировка строки мерчанта до любых других чтений
	if req.LockMerchantRow {
		if err := uc.merchantRepo.LockForUpdate(ctx, req.MerchantID); err != nil {
			if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
				uc.logger.Warn("EvaluateSlot: merchant id=%d not found", req.MerchantID)
				return nil, ErrMerchantNotFound
			}
			uc.logger.Error("EvaluateSlot: failed to lock merchant id=%d: %v", req.MerchantID, err)
			return nil, fmt.Errorf("%w: failed to lock merchant: %v", ErrInternal, err)
		}
	}

	// 2. Настройки: без часов работы вместимость не ограничена
	settings, err := uc.merchantRepo.GetSettings(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
			uc.logger.Warn("EvaluateSlot: merchant id=%d not found", req.MerchantID)
			return nil, ErrMerchantNotFound
		}
		if !intervals.IsSettingsGap(err) {
			uc.logger.Error("EvaluateSlot: failed to get settings merchant=%d: %v", req.MerchantID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = nil
	}
	if settings == nil || !settings.HasBusinessHours {
		uc.logger.Warn("EvaluateSlot: merchant id=%d has no business hours configured, capacity is unconstrained",
			req.MerchantID)
		return &Response{
			HasCapacity:       true,
			RemainingCapacity: domain.UnlimitedCapacity,
			Unconstrained:     true,
			Message:           MessageUnconstrained,
			outcome:           OutcomeUnconstrained,
		}, nil
	}

	// 3. Праздник закрывает день целиком
	holidays, err := uc.holidayRepo.ListByDate(ctx, req.MerchantID, date)
	if err != nil {
		uc.logger.Error("EvaluateSlot: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if domain.AnyDayOff(holidays) {
		return refusal(MessageHolidayClosed, OutcomeHoliday), nil
	}

	// 4. Часы работы на день недели
	business, open := intervals.BusinessHours(settings, nil, date)
	if !open {
		return refusal(MessageClosed, OutcomeClosed), nil
	}

	// 5. Активные сотрудники (без заглушки "Unassigned") и их расписание на день недели
	staff, err := uc.staffRepo.ListActiveWithSchedules(ctx, req.MerchantID, date.Weekday())
	if err != nil {
		uc.logger.Error("EvaluateSlot: failed to get staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 6. Исключения расписания на дату
	staffIDs := make([]int64, 0, len(staff))
	for _, s := range staff {
		staffIDs = append(staffIDs, s.ID)
	}
	overrides := map[int64]*domain.ScheduleOverride{}
	if len(staffIDs) > 0 {
		overrides, err = uc.staffRepo.ListOverrides(ctx, req.MerchantID, staffIDs, date)
		if err != nil {
			uc.logger.Error("EvaluateSlot: failed to get overrides: %v", err)
			return nil, fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
		}
	}

	// 7. Сотрудник учитывается, если смена покрывает окно и у него нет блокировки в окне.
	// Смена: исключение, иначе строка расписания по режиму uc.mode (по умолчанию первая), иначе часы работы.
	// Неразборчивая смена исключает сотрудника.
	covering := make([]int64, 0, len(staff))
	for _, s := range staff {
		roster, ok := intervals.Roster(settings, business, open, s.Schedules, overrides[s.ID], uc.mode)
		if ok && intervals.AnyCovers(roster, window) {
			covering = append(covering, s.ID)
		}
	}

	blocked := map[int64]bool{}
	if len(covering) > 0 {
		blocks, err := uc.blockRepo.ListOverlapping(ctx, req.MerchantID, covering, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("EvaluateSlot: failed to get availability blocks: %v", err)
			return nil, fmt.Errorf("%w: failed to get availability blocks: %v", ErrInternal, err)
		}
		for _, b := range blocks {
			blocked[b.StaffID] = true
		}
	}

	rostered := make(map[int64]bool, len(covering))
	for _, id := range covering {
		if !blocked[id] {
			rostered[id] = true
		}
	}

	// 8. Никого нет в смене
	if len(rostered) == 0 {
		return refusal(MessageNoRosteredStaff, OutcomeNoRosteredStaff), nil
	}

	// 9. Пересекающиеся активные бронирования
	bookings, err := uc.bookingRepo.ListOverlapping(ctx, domain.BookingsFilter{
		MerchantID: req.MerchantID,
		From:       req.StartTime,
		To:         req.EndTime,
		LocationID: req.LocationID,
	})
	if err != nil {
		uc.logger.Error("EvaluateSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	placeholderIDs, err := uc.staffRepo.ListPlaceholderIDs(ctx, req.MerchantID)
	if err != nil {
		uc.logger.Error("EvaluateSlot: failed to get placeholder staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get placeholder staff: %v", ErrInternal, err)
	}
	placeholders := make(map[int64]bool, len(placeholderIDs))
	for _, id := range placeholderIDs {
		placeholders[id] = true
	}

	assigned, unassigned := 0, 0
	for _, b := range bookings {
		if !b.IsActive() || !b.Overlaps(req.StartTime, req.EndTime) {
			continue
		}
		switch {
		case b.ProviderID == nil || placeholders[*b.ProviderID]:
			unassigned++
		case rostered[*b.ProviderID]:
			assigned++
		}
	}

	result := &Response{
		RosteredStaffCount:      len(rostered),
		AssignedBookingsCount:   assigned,
		UnassignedBookingsCount: unassigned,
		RemainingCapacity:       len(rostered) - assigned,
	}

	// 10. Все сотрудники заняты
	if result.RemainingCapacity <= 0 {
		result.RemainingCapacity = 0
		result.Message = MessageAllStaffBooked
		result.outcome = OutcomeAllStaffBooked
		return result, nil
	}

	// 11. Свободные места уже заняты бронированиями без сотрудника
	if unassigned >= result.RemainingCapacity {
		result.Message = MessageNoUnassignedCapacity
		result.outcome = OutcomeNoUnassignedCapacity
		return result, nil
	}

	// 12. Место есть
	result.HasCapacity = true
	result.Message = MessageCapacityAvailable
	result.outcome = OutcomeAvailable
	return result, nil
}

func refusal(message, outcome string) *Response {
	return &Response{Message: message, outcome: outcome}
}
