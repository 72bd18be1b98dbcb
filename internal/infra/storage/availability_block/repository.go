package availability_block

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

const table = "staff_availability_blocks"

var blockColumns = []string{
	"id",
	"merchant_id",
	"staff_id",
	"location_id",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий блоков недоступности сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTouching возвращает блоки того же мерчанта, сотрудника и локации, которые пересекаются
// с [start, end] или касаются его границ (start <= end' AND end >= start').
// NULL-локация совпадает только с NULL. Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) ListTouching(
	ctx context.Context,
	merchantID, staffID int64,
	locationID *int64,
	start, end time.Time,
) ([]*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var location squirrel.Sqlizer = squirrel.Eq{"location_id": nil}
	if locationID != nil {
		location = squirrel.Eq{"location_id": *locationID}
	}

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From(table).
		Where(squirrel.Eq{"merchant_id": merchantID, "staff_id": staffID}).
		Where(location).
		Where(squirrel.LtOrEq{"start_time": end}).
		Where(squirrel.GtOrEq{"end_time": start}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTouching - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTouching - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// ListOverlapping возвращает блоки указанных сотрудников, пересекающие [from, to) (полуоткрыто)
func (r *Repository) ListOverlapping(ctx context.Context, merchantID int64, staffIDs []int64, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error) {
	if len(staffIDs) == 0 {
		return []*domain.StaffAvailabilityBlock{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(table).
		Where(squirrel.Eq{"merchant_id": merchantID, "staff_id": staffIDs}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// List возвращает блоки мерчанта по фильтру, отсортированные по началу
func (r *Repository) List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From(table).
		Where(squirrel.Eq{"merchant_id": filter.MerchantID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Create сохраняет новый блок
func (r *Repository) Create(ctx context.Context, block *domain.StaffAvailabilityBlock) (*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"merchant_id",
			"staff_id",
			"location_id",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			block.MerchantID,
			block.StaffID,
			block.LocationID,
			block.StartTime,
			block.EndTime,
			block.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// DeleteByIDs удаляет блоки мерчанта по списку id и возвращает число удалённых строк
func (r *Repository) DeleteByIDs(ctx context.Context, merchantID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"merchant_id": merchantID, "id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет блок мерчанта. Блок чужого мерчанта считается несуществующим.
func (r *Repository) Delete(ctx context.Context, merchantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "merchant_id": merchantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func scanBlocks(rows *sql.Rows) ([]*domain.StaffAvailabilityBlock, error) {
	blocks := make([]*domain.StaffAvailabilityBlock, 0)

	for rows.Next() {
		var block domain.StaffAvailabilityBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.MerchantID,
			&block.StaffID,
			&block.LocationID,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
