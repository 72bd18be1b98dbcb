package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Response модели

// DayHoursResponse часы работы в один день недели
type DayHoursResponse struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`  // "09:00"
	Close  string `json:"close,omitempty"` // "18:00"
}

// SettingsResponse нормализованные настройки мерчанта
type SettingsResponse struct {
	MerchantID                   int64                       `json:"merchantId"`
	Configured                   bool                        `json:"configured"` // false - вместимость не ограничена
	BusinessHours                map[string]DayHoursResponse `json:"businessHours"`
	MinimumBookingNoticeMinutes  int                         `json:"minimumBookingNoticeMinutes"`
	ShowOnlyRosteredStaffDefault bool                        `json:"showOnlyRosteredStaffDefault"`
}

// FromDomainSettings конвертирует domain настройки в response.
// Дни называются полным английским именем в нижнем регистре.
func FromDomainSettings(s *domain.MerchantSettings) *SettingsResponse {
	hours := make(map[string]DayHoursResponse, len(s.BusinessHours))
	for weekday, day := range s.BusinessHours {
		resp := DayHoursResponse{IsOpen: day.IsOpen}
		if day.IsOpen {
			resp.Open = day.Open.String()
			resp.Close = day.Close.String()
		}
		hours[dayName(weekday)] = resp
	}

	return &SettingsResponse{
		MerchantID:                   s.MerchantID,
		Configured:                   s.HasBusinessHours,
		BusinessHours:                hours,
		MinimumBookingNoticeMinutes:  s.MinimumBookingNoticeMinutes,
		ShowOnlyRosteredStaffDefault: s.ShowOnlyRosteredStaffDefault,
	}
}

// NotConfigured ответ для мерчанта без пригодных настроек
func NotConfigured(merchantID int64) *SettingsResponse {
	return &SettingsResponse{
		MerchantID:    merchantID,
		BusinessHours: map[string]DayHoursResponse{},
	}
}

func dayName(weekday time.Weekday) string {
	return strings.ToLower(weekday.String())
}
