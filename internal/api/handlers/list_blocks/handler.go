package list_blocks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service BlocksService
	logger  Logger
}

func NewHandler(service BlocksService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/staff/{staffId}/blocks
// Query params: locationId, from, to (RFC3339, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/blocks - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/blocks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(merchantID, staffID, query.Get("locationId"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/blocks - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, blocks.ErrInvalidInput) {
			h.logger.Warn("GET /merchants/{id}/staff/{id}/blocks - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /merchants/{id}/staff/{id}/blocks - Failed to list blocks: merchant_id=%d, staff_id=%d, error=%v",
			merchantID, staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /merchants/{id}/staff/{id}/blocks - Blocks retrieved successfully: merchant_id=%d, staff_id=%d, count=%d",
		merchantID, staffID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
