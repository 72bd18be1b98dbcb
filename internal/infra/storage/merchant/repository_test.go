package merchant

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetSettings(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT settings FROM merchants WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"settings"}).
			AddRow([]byte(`{"businessHours":{"monday":{"open":"09:00","close":"17:00"}}}`)))

	settings, err := repo.GetSettings(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, settings.HasBusinessHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetSettings_NullColumn(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT settings FROM merchants").
		WillReturnRows(sqlmock.NewRows([]string{"settings"}).AddRow(nil))

	_, err := repo.GetSettings(context.Background(), 5)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestRepository_GetSettings_MerchantNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT settings FROM merchants").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSettings(context.Background(), 5)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestRepository_LockForUpdate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM merchants WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	require.NoError(t, repo.LockForUpdate(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockForUpdate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.ErrorIs(t, repo.LockForUpdate(context.Background(), 5), ErrMerchantNotFound)
}
