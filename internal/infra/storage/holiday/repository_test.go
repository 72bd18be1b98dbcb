package holiday

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var holidayColumns = []string{"id", "merchant_id", "date", "is_day_off", "name", "source", "state"}

func TestRepository_ListByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM merchant_holidays WHERE merchant_id = $1 AND date = $2")).
		WithArgs(int64(4), "2026-12-25").
		WillReturnRows(sqlmock.NewRows(holidayColumns).
			AddRow(int64(1), int64(4), date, true, "Christmas", "public", nil))

	holidays, err := NewRepository(db).ListByDate(context.Background(), 4, date)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.True(t, domain.AnyDayOff(holidays))
	assert.Nil(t, holidays[0].State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListInRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE merchant_id = $1 AND (date >= $2 AND date <= $3)")).
		WithArgs(int64(4), "2026-01-01", "2026-01-07").
		WillReturnRows(sqlmock.NewRows(holidayColumns).
			AddRow(int64(1), int64(4), from, true, "New Year", "public", "BY").
			AddRow(int64(2), int64(4), from.AddDate(0, 0, 6), false, "Christmas Eve", nil, nil))

	holidays, err := NewRepository(db).ListInRange(context.Background(), 4, from, to)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "BY", *holidays[0].State)
	assert.Equal(t, "", holidays[1].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM merchant_holidays").WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).ListByDate(context.Background(), 4, time.Now())
	assert.ErrorIs(t, err, ErrExecQuery)
}
