package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий услуг мерчанта (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByID возвращает активную услугу мерчанта
func (r *Repository) GetActiveByID(ctx context.Context, merchantID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"merchant_id",
		"name",
		"duration_minutes",
		"padding_before_minutes",
		"padding_after_minutes",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{
			"id":          serviceID,
			"merchant_id": merchantID,
			"is_active":   true,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                           domain.Service
		paddingBefore, paddingAfter sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.MerchantID,
		&s.Name,
		&s.DurationMinutes,
		&paddingBefore,
		&paddingAfter,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan service: %v", ErrScanRow, err)
	}

	s.PaddingBeforeMinutes = int(paddingBefore.Int64)
	s.PaddingAfterMinutes = int(paddingAfter.Int64)

	return &s, nil
}
