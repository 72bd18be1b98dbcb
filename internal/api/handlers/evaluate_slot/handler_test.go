package evaluate_slot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evaluateSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_slot"
)

type fakeUseCase struct {
	req  *evaluateSlot.Request
	resp *evaluateSlot.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *evaluateSlot.Request) (*evaluateSlot.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, merchantID, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"merchantId": merchantID})
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

const validBody = `{"locationId":3,"startTime":"2030-01-07T10:00:00+01:00","endTime":"2030-01-07T11:00:00+01:00","timezone":"Europe/Berlin","lockMerchantRow":true}`

func TestHandle_Refusal(t *testing.T) {
	uc := &fakeUseCase{resp: &evaluateSlot.Response{
		HasCapacity:           false,
		RosteredStaffCount:    2,
		AssignedBookingsCount: 2,
		Message:               evaluateSlot.MessageAllStaffBooked,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "1", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{
		"hasCapacity": false,
		"rosteredStaffCount": 2,
		"assignedBookingsCount": 2,
		"unassignedBookingsCount": 0,
		"remainingCapacity": 0,
		"unconstrained": false,
		"message": %q
	}`, evaluateSlot.MessageAllStaffBooked), rec.Body.String())

	assert.Equal(t, int64(1), uc.req.MerchantID)
	assert.Equal(t, int64(3), *uc.req.LocationID)
	assert.True(t, uc.req.LockMerchantRow)
	assert.Equal(t, "Europe/Berlin", uc.req.Timezone)
	assert.True(t, uc.req.StartTime.Equal(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		merchantID string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "bad merchant", merchantID: "abc", body: validBody, wantStatus: http.StatusBadRequest},
		{name: "bad body", merchantID: "1", body: `{"startTime":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", merchantID: "1", body: `{"start":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", merchantID: "1", body: `{"startTime":"10:00","endTime":"11:00"}`, wantStatus: http.StatusBadRequest},
		{name: "usecase validation", merchantID: "1", body: validBody, ucErr: evaluateSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "merchant not found", merchantID: "1", body: validBody, ucErr: evaluateSlot.ErrMerchantNotFound, wantStatus: http.StatusNotFound},
		{name: "serialization failure", merchantID: "1", body: validBody, ucErr: errors.New("pq: could not serialize access"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := serve(h, tt.merchantID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
