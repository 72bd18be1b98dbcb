package merchant

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

// Repository репозиторий мерчантов: настройки и блокировка строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мерчантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings читает merchants.settings и приводит их к domain.MerchantSettings.
// Если в контексте есть транзакция, чтение идёт в ней.
func (r *Repository) GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("settings").
		From("merchants").
		Where(squirrel.Eq{"id": merchantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	return NormalizeSettings(merchantID, raw)
}

// LockForUpdate берёт эксклюзивную блокировку строки мерчанта до конца текущей транзакции.
// Вне транзакции блокировка снимается сразу после запроса, поэтому вызывать её нужно внутри txmanager.
func (r *Repository) LockForUpdate(ctx context.Context, merchantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("merchants").
		Where(squirrel.Eq{"id": merchantID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMerchantNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockForUpdate - execute query: %v", ErrExecQuery, err)
	}

	return nil
}
