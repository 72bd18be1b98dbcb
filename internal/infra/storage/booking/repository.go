package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований (только чтение: создание бронирований вне этого сервиса)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOverlapping возвращает бронирования мерчанта, пересекающие окно [filter.From, filter.To).
// Пересечение полуоткрытое: start_time < To AND end_time > From.
//
// Примеры использования:
//
// 1. Активные бронирования сотрудника за период (генерация слотов):
//    filter := domain.BookingsFilter{MerchantID: 1, From: from, To: to, ProviderIDs: []int64{staffID}}
//
// 2. Все активные бронирования окна, включая неназначенные (оценка вместимости):
//    filter := domain.BookingsFilter{MerchantID: 1, From: start, To: end, LocationID: &locationID}
//
// Если в контексте есть транзакция, чтение идёт в её снимке.
func (r *Repository) ListOverlapping(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.listOverlapping(ctx, "ListOverlapping", filter, nil)
}

// ListByStaffInRange возвращает активные бронирования сотрудника, пересекающие [from, to)
func (r *Repository) ListByStaffInRange(ctx context.Context, merchantID, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	return r.listOverlapping(ctx, "ListByStaffInRange", domain.BookingsFilter{
		MerchantID:  merchantID,
		From:        from,
		To:          to,
		ProviderIDs: []int64{staffID},
	}, nil)
}

// ListFutureConflicts возвращает активные бронирования сотрудника, пересекающие [from, to)
// и заканчивающиеся позже now. Используется при создании блока недоступности.
func (r *Repository) ListFutureConflicts(
	ctx context.Context,
	merchantID, staffID int64,
	locationID *int64,
	from, to, now time.Time,
) ([]*domain.Booking, error) {
	return r.listOverlapping(ctx, "ListFutureConflicts", domain.BookingsFilter{
		MerchantID:  merchantID,
		From:        from,
		To:          to,
		LocationID:  locationID,
		ProviderIDs: []int64{staffID},
	}, &now)
}

func (r *Repository) listOverlapping(ctx context.Context, op string, filter domain.BookingsFilter, endsAfter *time.Time) ([]*domain.Booking, error) {
	if filter.From.IsZero() || filter.To.IsZero() || !filter.From.Before(filter.To) {
		return nil, fmt.Errorf("%w: %s - window [%s, %s)", ErrInvalidFilter, op, filter.From, filter.To)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"merchant_id",
		"location_id",
		"provider_id",
		"service_id",
		"start_time",
		"end_time",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"merchant_id": filter.MerchantID}).
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Gt{"end_time": filter.From})

	// Фильтрация по локации (если указана)
	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}

	// Фильтрация по исполнителям (nil - любые, включая неназначенные)
	if filter.ProviderIDs != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": filter.ProviderIDs})
	}

	// Отменённые, no-show и удалённые бронирования время не занимают
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusStrings(domain.InactiveStatuses)})
	}

	if endsAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *endsAfter})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var status string
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.MerchantID,
			&booking.LocationID,
			&booking.ProviderID,
			&booking.ServiceID,
			&booking.StartTime,
			&booking.EndTime,
			&status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.Status = domain.BookingStatus(status)
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
