package holiday

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

// Repository репозиторий праздников мерчанта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDate возвращает праздники мерчанта на дату
func (r *Repository) ListByDate(ctx context.Context, merchantID int64, date time.Time) ([]*domain.MerchantHoliday, error) {
	return r.list(ctx, "ListByDate", merchantID, squirrel.Eq{"date": date.Format(domain.DateFormat)})
}

// ListInRange возвращает праздники мерчанта в диапазоне дат включительно
func (r *Repository) ListInRange(ctx context.Context, merchantID int64, from, to time.Time) ([]*domain.MerchantHoliday, error) {
	return r.list(ctx, "ListInRange", merchantID, squirrel.And{
		squirrel.GtOrEq{"date": from.Format(domain.DateFormat)},
		squirrel.LtOrEq{"date": to.Format(domain.DateFormat)},
	})
}

func (r *Repository) list(ctx context.Context, op string, merchantID int64, dateCond squirrel.Sqlizer) ([]*domain.MerchantHoliday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"merchant_id",
		"date",
		"is_day_off",
		"name",
		"source",
		"state",
	).
		From("merchant_holidays").
		Where(squirrel.Eq{"merchant_id": merchantID}).
		Where(dateCond).
		OrderBy("date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	holidays := make([]*domain.MerchantHoliday, 0)
	for rows.Next() {
		var (
			h            domain.MerchantHoliday
			name, source sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.MerchantID, &h.Date, &h.IsDayOff, &name, &source, &h.State); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		h.Name = name.String
		h.Source = source.String
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return holidays, nil
}
