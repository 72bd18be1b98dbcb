package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDate       = "дата начала обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность, ожидается число минут"
	msgInvalidParams     = "некорректные параметры запроса"
	msgMerchantNotFound  = "мерчант не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgStaffNotFound     = "сотрудник не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/staff/{staffId}/available-slots
// Query params: serviceId (required), startDate (required, YYYY-MM-DD), endDate, timezone, duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	useCaseReq, msg := ToUseCaseRequest(merchantID, staffID, queryParams{
		ServiceID: query.Get("serviceId"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		Timezone:  query.Get("timezone"),
		Duration:  query.Get("duration"),
	})
	if msg != "" {
		h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Invalid query: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrMerchantNotFound):
			h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Service not found: merchant_id=%d, service_id=%d",
				merchantID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /merchants/{id}/staff/{id}/available-slots - Staff not found: merchant_id=%d, staff_id=%d",
				merchantID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /merchants/{id}/staff/{id}/available-slots - Failed to get slots: merchant_id=%d, staff_id=%d, error=%v",
				merchantID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /merchants/{id}/staff/{id}/available-slots - Slots retrieved successfully: merchant_id=%d, staff_id=%d, slots_count=%d",
		merchantID, staffID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
