package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceColumns = []string{
	"id", "merchant_id", "name", "duration_minutes", "padding_before_minutes", "padding_after_minutes", "is_active",
}

func TestRepository_GetActiveByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE id = $1 AND is_active = $2 AND merchant_id = $3")).
		WithArgs(int64(8), true, int64(2)).
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow(int64(8), int64(2), "Haircut", 60, 15, nil, true))

	s, err := NewRepository(db).GetActiveByID(context.Background(), 2, 8)
	require.NoError(t, err)
	assert.Equal(t, 60, s.DurationMinutes)
	assert.Equal(t, 15, s.PaddingBeforeMinutes)
	assert.Equal(t, 0, s.PaddingAfterMinutes)
	assert.Equal(t, 75, s.TotalMinutes(s.DurationMinutes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM services").WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err = NewRepository(db).GetActiveByID(context.Background(), 2, 8)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
