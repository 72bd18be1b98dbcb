package delete_block

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
	msgInvalidBlockID    = "некорректный ID блокировки"
	msgBlockNotFound     = "блокировка не найдена"
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

// Handle DELETE /api/v1/merchants/{merchantId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /merchants/{id}/blocks/{id} - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /merchants/{id}/blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), merchantID, blockID); err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("DELETE /merchants/{id}/blocks/{id} - Invalid ids: merchant_id=%d, block_id=%d", merchantID, blockID)
			handlers.RespondBadRequest(w, msgInvalidBlockID)

		case errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /merchants/{id}/blocks/{id} - Block not found: merchant_id=%d, block_id=%d", merchantID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /merchants/{id}/blocks/{id} - Failed to delete block: merchant_id=%d, block_id=%d, error=%v",
				merchantID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /merchants/{id}/blocks/{id} - Block deleted: merchant_id=%d, block_id=%d", merchantID, blockID)
	w.WriteHeader(http.StatusNoContent)
}
