package evaluate_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	evaluateSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_slot"
)

const (
	msgInvalidMerchantID  = "некорректный ID мерчанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidParams      = "некорректные параметры запроса"
	msgMerchantNotFound   = "мерчант не найден"
)

type Handler struct {
	useCase EvaluateSlotUseCase
	logger  Logger
}

func NewHandler(useCase EvaluateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/merchants/{merchantId}/capacity/evaluate
// Отказ по вместимости - это успешный ответ с hasCapacity=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.ParseInt(mux.Vars(r)["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /merchants/{id}/capacity/evaluate - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	var req EvaluateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /merchants/{id}/capacity/evaluate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(merchantID)
	if err != nil {
		h.logger.Warn("POST /merchants/{id}/capacity/evaluate - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, evaluateSlot.ErrInvalidInput):
			h.logger.Warn("POST /merchants/{id}/capacity/evaluate - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, evaluateSlot.ErrMerchantNotFound):
			h.logger.Warn("POST /merchants/{id}/capacity/evaluate - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		default:
			h.logger.Error("POST /merchants/{id}/capacity/evaluate - Failed to evaluate: merchant_id=%d, error=%v",
				merchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /merchants/{id}/capacity/evaluate - Evaluated: merchant_id=%d, has_capacity=%t, remaining=%d",
		merchantID, result.HasCapacity, result.RemainingCapacity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
