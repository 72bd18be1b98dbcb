package create_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_block"
)

const (
	msgInvalidMerchantID  = "некорректный ID мерчанта"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidParams      = "некорректные параметры блокировки"
	msgStaffNotFound      = "сотрудник не найден"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/merchants/{merchantId}/staff/{staffId}/blocks
// Пересекающиеся и соседние блокировки объединяются в одну
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(merchantID, staffID)
	if err != nil {
		h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, createBlock.ErrStaffNotFound):
			h.logger.Warn("POST /merchants/{id}/staff/{id}/blocks - Staff not found: merchant_id=%d, staff_id=%d",
				merchantID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("POST /merchants/{id}/staff/{id}/blocks - Failed to create block: merchant_id=%d, staff_id=%d, error=%v",
				merchantID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /merchants/{id}/staff/{id}/blocks - Block created: block_id=%d, merged=%d, conflicts=%d",
		result.Block.ID, result.MergedCount, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
