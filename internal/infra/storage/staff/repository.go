package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// legacyPlaceholderName имя, по которому старые записи помечали "неназначенного" сотрудника
const legacyPlaceholderName = "unassigned"

// placeholderCondition сотрудник-заглушка: по флагу или по старому соглашению об имени
var placeholderCondition = squirrel.Or{
	squirrel.Eq{"s.is_unassigned_placeholder": true},
	squirrel.Expr("LOWER(s.name) = ?", legacyPlaceholderName),
}

var staffColumns = []string{
	"s.id",
	"s.merchant_id",
	"s.name",
	"s.status",
	"s.is_unassigned_placeholder",
}

// Repository репозиторий сотрудников, их недельных расписаний и переопределений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByID возвращает активного сотрудника мерчанта
func (r *Repository) GetActiveByID(ctx context.Context, merchantID, staffID int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff s").
		Where(squirrel.Eq{
			"s.id":          staffID,
			"s.merchant_id": merchantID,
			"s.status":      string(domain.StaffStatusActive),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan staff: %v", ErrScanRow, err)
	}

	return member, nil
}

// ListActiveWithSchedules возвращает активных сотрудников мерчанта (без заглушки "неназначенный")
// вместе с их расписанием на указанный день недели
func (r *Repository) ListActiveWithSchedules(ctx context.Context, merchantID int64, weekday time.Weekday) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff s").
		Where(squirrel.Eq{
			"s.merchant_id": merchantID,
			"s.status":      string(domain.StaffStatusActive),
		}).
		Where(squirrel.Expr("COALESCE(s.is_unassigned_placeholder, FALSE) = FALSE")).
		Where(squirrel.Expr("LOWER(s.name) <> ?", legacyPlaceholderName)).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveWithSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveWithSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.Staff, 0)
	byID := make(map[int64]*domain.Staff)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveWithSchedules - scan row: %v", ErrScanRow, err)
		}
		members = append(members, member)
		byID[member.ID] = member
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveWithSchedules - rows error: %v", ErrScanRow, err)
	}

	if len(members) == 0 {
		return members, nil
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	schedules, err := r.listSchedules(ctx, merchantID, ids, weekday)
	if err != nil {
		return nil, err
	}
	for _, s := range schedules {
		if member, ok := byID[s.StaffID]; ok {
			member.Schedules = append(member.Schedules, s)
		}
	}

	return members, nil
}

// GetSchedules возвращает строки недельного расписания сотрудника на день недели
func (r *Repository) GetSchedules(ctx context.Context, merchantID, staffID int64, weekday time.Weekday) ([]domain.StaffSchedule, error) {
	return r.listSchedules(ctx, merchantID, []int64{staffID}, weekday)
}

func (r *Repository) listSchedules(ctx context.Context, merchantID int64, staffIDs []int64, weekday time.Weekday) ([]domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ss.id",
		"ss.staff_id",
		"ss.day_of_week",
		"ss.start_time",
		"ss.end_time",
	).
		From("staff_schedules ss").
		Join("staff s ON s.id = ss.staff_id").
		Where(squirrel.Eq{
			"s.merchant_id":  merchantID,
			"ss.staff_id":    staffIDs,
			"ss.day_of_week": int(weekday),
		}).
		OrderBy("ss.staff_id ASC", "ss.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]domain.StaffSchedule, 0)
	for rows.Next() {
		var (
			s          domain.StaffSchedule
			dayOfWeek  int
			start, end sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.StaffID, &dayOfWeek, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: listSchedules - scan row: %v", ErrScanRow, err)
		}
		// NULL превращается в пустую строку и при разборе считается "недоступен"
		s.DayOfWeek = time.Weekday(dayOfWeek)
		s.StartTime = start.String
		s.EndTime = end.String
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// GetOverride возвращает переопределение расписания сотрудника на дату или ErrOverrideNotFound
func (r *Repository) GetOverride(ctx context.Context, merchantID, staffID int64, date time.Time) (*domain.ScheduleOverride, error) {
	overrides, err := r.ListOverrides(ctx, merchantID, []int64{staffID}, date)
	if err != nil {
		return nil, err
	}
	override, ok := overrides[staffID]
	if !ok {
		return nil, ErrOverrideNotFound
	}
	return override, nil
}

// ListOverrides возвращает переопределения расписания на дату, по одному на сотрудника.
// Если на дату несколько строк, берётся последняя созданная.
func (r *Repository) ListOverrides(ctx context.Context, merchantID int64, staffIDs []int64, date time.Time) (map[int64]*domain.ScheduleOverride, error) {
	result := make(map[int64]*domain.ScheduleOverride)
	if len(staffIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"so.id",
		"so.staff_id",
		"so.date",
		"so.start_time",
		"so.end_time",
	).
		From("schedule_overrides so").
		Join("staff s ON s.id = so.staff_id").
		Where(squirrel.Eq{
			"s.merchant_id": merchantID,
			"so.staff_id":   staffIDs,
			"so.date":       date.Format(domain.DateFormat),
		}).
		OrderBy("so.staff_id ASC", "so.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o          domain.ScheduleOverride
			start, end sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.StaffID, &o.Date, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - scan row: %v", ErrScanRow, err)
		}
		if start.Valid {
			o.StartTime = &start.String
		}
		if end.Valid {
			o.EndTime = &end.String
		}
		result[o.StaffID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListPlaceholderIDs возвращает id сотрудников-заглушек мерчанта независимо от статуса:
// их бронирования считаются неназначенными
func (r *Repository) ListPlaceholderIDs(ctx context.Context, merchantID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id").
		From("staff s").
		Where(squirrel.Eq{"s.merchant_id": merchantID}).
		Where(placeholderCondition).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPlaceholderIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPlaceholderIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListPlaceholderIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPlaceholderIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var (
		member      domain.Staff
		status      string
		placeholder sql.NullBool
	)
	if err := row.Scan(&member.ID, &member.MerchantID, &member.Name, &status, &placeholder); err != nil {
		return nil, err
	}
	member.Status = domain.StaffStatus(status)
	member.IsUnassignedPlaceholder = placeholder.Bool || strings.EqualFold(strings.TrimSpace(member.Name), legacyPlaceholderName)
	return &member, nil
}
