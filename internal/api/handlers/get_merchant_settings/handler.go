package get_merchant_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgMerchantNotFound  = "мерчант не найден"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/settings
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.ParseInt(mux.Vars(r)["merchantId"], 10, 64)
	if err != nil || merchantID <= 0 {
		h.logger.Warn("GET /merchants/{id}/settings - Invalid merchant ID: %q", mux.Vars(r)["merchantId"])
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	result, err := h.service.Get(r.Context(), merchantID)
	if err != nil {
		if errors.Is(err, settings.ErrMerchantNotFound) {
			h.logger.Warn("GET /merchants/{id}/settings - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)
			return
		}
		h.logger.Error("GET /merchants/{id}/settings - Failed to get settings: merchant_id=%d, error=%v",
			merchantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /merchants/{id}/settings - Settings retrieved successfully: merchant_id=%d, configured=%t",
		merchantID, result.Configured)
	handlers.RespondJSON(w, http.StatusOK, result)
}
