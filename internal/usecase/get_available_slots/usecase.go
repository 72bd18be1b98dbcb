package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/intervals"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

// UseCase use case для получения слотов сотрудника по услуге на диапазон дат
type UseCase struct {
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	resolver     IntervalResolver
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	metrics      Metrics
	options      Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	resolver IntervalResolver,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	if options.SlotIntervalMinutes <= 0 {
		options.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if options.MaxRangeDays <= 0 {
		options.MaxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		resolver:     resolver,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		metrics:      metrics,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "GetAvailableSlots")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("merchant.id", req.MerchantID),
		attribute.Int64("staff.id", req.StaffID),
		attribute.Int64("service.id", req.ServiceID),
	)

	uc.logger.Info("GetAvailableSlots: merchant=%d, staff=%d, service=%d, range=%s..%s, tz=%q",
		req.MerchantID, req.StaffID, req.ServiceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Timezone)

	// 1. Валидация входных данных
	loc, err := validateRequest(req, uc.options.MaxRangeDays)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		MerchantID: req.MerchantID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Timezone:   loc.String(),
		Slots:      []domain.Slot{},
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetActiveByID(ctx, req.MerchantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for merchant=%d", req.ServiceID, req.MerchantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Проверяем сотрудника
	if _, err := uc.staffRepo.GetActiveByID(ctx, req.MerchantID, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found for merchant=%d", req.StaffID, req.MerchantID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Настройки мерчанта: без них все дни закрыты
	settings, err := uc.settingsRepo.GetSettings(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
			uc.logger.Warn("GetAvailableSlots: merchant id=%d not found", req.MerchantID)
			return nil, ErrMerchantNotFound
		}
		if intervals.IsSettingsGap(err) {
			uc.logger.Warn("GetAvailableSlots: merchant id=%d has no usable settings, returning no slots: %v",
				req.MerchantID, err)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get settings merchant=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Длительность: явная или из услуги
	sp := footprint{
		duration:      service.DurationMinutes,
		paddingBefore: service.PaddingBeforeMinutes,
		paddingAfter:  service.PaddingAfterMinutes,
	}
	if req.DurationOverride != nil {
		sp.duration = *req.DurationOverride
	}

	// 6. Бронирования и блокировки сотрудника на весь диапазон с запасом на отступы
	firstDay := dayInLocation(req.StartDate, loc)
	lastDay := dayInLocation(req.EndDate, loc)
	rangeFrom := firstDay.Add(-minutes(sp.paddingBefore))
	rangeTo := lastDay.AddDate(0, 0, 1).Add(minutes(sp.duration + sp.paddingAfter))

	bookings, err := uc.bookingRepo.ListByStaffInRange(ctx, req.MerchantID, req.StaffID, rangeFrom, rangeTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.ListOverlapping(ctx, req.MerchantID, []int64{req.StaffID}, rangeFrom, rangeTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability blocks: %v", ErrInternal, err)
	}

	// 7. Слоты раньше now + minimumBookingNotice не показываем
	earliest := uc.timeProvider.Now().Add(minutes(settings.MinimumBookingNoticeMinutes))

	// 8. Проходим по дням диапазона
	available, unavailable := 0, 0
	for date := firstDay; !date.After(lastDay); date = date.AddDate(0, 0, 1) {
		daySlots, err := uc.slotsForDay(ctx, req, date, sp, earliest, bookings, blocks)
		if err != nil {
			return nil, err
		}
		for _, s := range daySlots {
			if s.Available {
				available++
			} else {
				unavailable++
			}
		}
		response.Slots = append(response.Slots, daySlots...)
	}

	uc.metrics.AddSlots(available, unavailable)
	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for merchant=%d, staff=%d",
		len(response.Slots), available, req.MerchantID, req.StaffID)

	return response, nil
}

func (uc *UseCase) slotsForDay(
	ctx context.Context,
	req *Request,
	date time.Time,
	sp footprint,
	earliest time.Time,
	bookings []*domain.Booking,
	blocks []*domain.StaffAvailabilityBlock,
) ([]domain.Slot, error) {
	day := date.Format(domain.DateFormat)

	business, open, err := uc.resolver.ResolveBusinessHours(ctx, req.MerchantID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve business hours for %s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}
	if !open {
		uc.logger.Info("GetAvailableSlots: merchant=%d is closed on %s", req.MerchantID, day)
		return nil, nil
	}

	roster, rostered, err := uc.resolver.ResolveStaffRoster(ctx, req.MerchantID, req.StaffID, date)
	if err != nil {
		if errors.Is(err, intervals.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve roster for %s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to resolve roster: %v", ErrInternal, err)
	}
	if !rostered {
		uc.logger.Info("GetAvailableSlots: staff=%d is not rostered on %s", req.StaffID, day)
		return nil, nil
	}

	var slots []domain.Slot
	for _, window := range intervals.EffectiveWindows(business, roster) {
		for _, candidate := range generateCandidates(window, uc.options.SlotIntervalMinutes, sp) {
			start := candidate.OnDate(date)
			if start.Before(earliest) {
				continue
			}
			slots = append(slots, domain.Slot{
				StartTime: start,
				EndTime:   start.Add(minutes(sp.duration)),
				Available: !hasConflict(start, sp, bookings, blocks),
			})
		}
	}
	return slots, nil
}
