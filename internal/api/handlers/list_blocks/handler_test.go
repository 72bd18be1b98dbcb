package list_blocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks/models"
)

type fakeService struct {
	req  *models.ListRequest
	resp *models.BlockListResponse
	err  error
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) (*models.BlockListResponse, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string, vars map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = mux.SetURLVars(r, vars)
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Filters(t *testing.T) {
	svc := &fakeService{resp: &models.BlockListResponse{Blocks: []models.BlockResponse{}, Total: 0}}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "/?locationId=3&from=2030-01-07T00:00:00Z&to=2030-01-08T00:00:00Z",
		map[string]string{"merchantId": "1", "staffId": "5"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"blocks":[],"total":0}`, rec.Body.String())
	assert.Equal(t, int64(5), *svc.req.StaffID)
	assert.Equal(t, int64(3), *svc.req.LocationID)
	assert.Equal(t, time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC), *svc.req.To)
}

func TestHandle_Errors(t *testing.T) {
	vars := map[string]string{"merchantId": "1", "staffId": "5"}

	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
	}{
		{name: "bad location", target: "/?locationId=x", wantStatus: http.StatusBadRequest},
		{name: "bad from", target: "/?from=yesterday", wantStatus: http.StatusBadRequest},
		{name: "inverted period", target: "/", svcErr: fmt.Errorf("%w: from must be before to", blocks.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", target: "/", svcErr: errors.New("timeout"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.svcErr}, nopLogger{})
			rec := serve(h, tt.target, vars)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
