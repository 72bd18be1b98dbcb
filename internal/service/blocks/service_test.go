package blocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	blockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability_block"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeRepo struct {
	blocks  []*domain.StaffAvailabilityBlock
	filter  domain.BlocksFilter
	listErr error
	deleted []int64
}

func (f *fakeRepo) List(_ context.Context, filter domain.BlocksFilter) ([]*domain.StaffAvailabilityBlock, error) {
	f.filter = filter
	return f.blocks, f.listErr
}

func (f *fakeRepo) Delete(_ context.Context, merchantID, id int64) error {
	for _, b := range f.blocks {
		if b.ID == id && b.MerchantID == merchantID {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return blockRepo.ErrBlockNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_List(t *testing.T) {
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{blocks: []*domain.StaffAvailabilityBlock{
		{ID: 1, MerchantID: 1, StaffID: 5, StartTime: start, EndTime: start.Add(time.Hour), Reason: ptr.Ptr("sick")},
		{ID: 2, MerchantID: 1, StaffID: 5, StartTime: start.Add(3 * time.Hour), EndTime: start.Add(4 * time.Hour)},
	}}
	svc := NewService(repo, nopLogger{})

	to := start.Add(24 * time.Hour)
	resp, err := svc.List(context.Background(), &models.ListRequest{
		MerchantID: 1,
		StaffID:    ptr.Ptr(int64(5)),
		From:       &start,
		To:         &to,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, int64(1), resp.Blocks[0].ID)
	assert.Equal(t, "sick", *resp.Blocks[0].Reason)
	assert.Equal(t, int64(5), *repo.filter.StaffID)
	assert.Nil(t, repo.filter.LocationID)
	assert.Equal(t, to, *repo.filter.To)
}

func TestService_List_Errors(t *testing.T) {
	from := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

	t.Run("inverted period", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})
		_, err := svc.List(context.Background(), &models.ListRequest{MerchantID: 1, From: &from, To: &from})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc := NewService(&fakeRepo{listErr: errors.New("connection reset")}, nopLogger{})
		_, err := svc.List(context.Background(), &models.ListRequest{MerchantID: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})
		resp, err := svc.List(context.Background(), &models.ListRequest{MerchantID: 1})
		require.NoError(t, err)
		assert.NotNil(t, resp.Blocks)
		assert.Zero(t, resp.Total)
	})
}

func TestService_Delete(t *testing.T) {
	repo := &fakeRepo{blocks: []*domain.StaffAvailabilityBlock{{ID: 3, MerchantID: 1}}}
	svc := NewService(repo, nopLogger{})

	tests := []struct {
		name       string
		merchantID int64
		blockID    int64
		wantErr    error
	}{
		{name: "other merchant", merchantID: 2, blockID: 3, wantErr: ErrBlockNotFound},
		{name: "unknown block", merchantID: 1, blockID: 9, wantErr: ErrBlockNotFound},
		{name: "invalid id", merchantID: 1, blockID: 0, wantErr: ErrInvalidInput},
		{name: "deleted", merchantID: 1, blockID: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Delete(context.Background(), tt.merchantID, tt.blockID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	assert.Equal(t, []int64{3}, repo.deleted)
}
