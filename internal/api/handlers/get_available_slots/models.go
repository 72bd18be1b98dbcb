package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	MerchantID int64           `json:"merchantId"`
	StaffID    int64           `json:"staffId"`
	ServiceID  int64           `json:"serviceId"`
	Timezone   string          `json:"timezone"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"` // RFC3339 в часовом поясе запроса
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.Format(time.RFC3339),
			EndTime:         slot.EndTime.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes(),
			Available:       slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		MerchantID: resp.MerchantID,
		StaffID:    resp.StaffID,
		ServiceID:  resp.ServiceID,
		Timezone:   resp.Timezone,
		Slots:      slots,
	}
}

// queryParams сырые query параметры запроса слотов
type queryParams struct {
	ServiceID string
	StartDate string
	EndDate   string // пусто - равен StartDate
	Timezone  string
	Duration  string // пусто - длительность услуги
}

// ToUseCaseRequest создает запрос use case из path и query параметров.
// Возвращает сообщение для клиента, если параметр не разобран.
func ToUseCaseRequest(merchantID, staffID int64, q queryParams) (*getAvailableSlots.Request, string) {
	if q.ServiceID == "" {
		return nil, msgMissingServiceID
	}
	serviceID, err := strconv.ParseInt(q.ServiceID, 10, 64)
	if err != nil {
		return nil, msgInvalidServiceID
	}

	if q.StartDate == "" {
		return nil, msgMissingDate
	}
	startDate, err := time.Parse(domain.DateFormat, q.StartDate)
	if err != nil {
		return nil, msgInvalidDate
	}

	endDate := startDate
	if q.EndDate != "" {
		endDate, err = time.Parse(domain.DateFormat, q.EndDate)
		if err != nil {
			return nil, msgInvalidDate
		}
	}

	req := &getAvailableSlots.Request{
		MerchantID: merchantID,
		StaffID:    staffID,
		ServiceID:  serviceID,
		StartDate:  startDate,
		EndDate:    endDate,
		Timezone:   q.Timezone,
	}

	if q.Duration != "" {
		duration, err := strconv.Atoi(q.Duration)
		if err != nil {
			return nil, msgInvalidDuration
		}
		req.DurationOverride = &duration
	}

	return req, ""
}
