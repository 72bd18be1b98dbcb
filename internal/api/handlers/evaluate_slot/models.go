package evaluate_slot

import (
	"time"

	evaluateSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_slot"
)

// EvaluateSlotRequest HTTP запрос на оценку вместимости окна
type EvaluateSlotRequest struct {
	LocationID      *int64 `json:"locationId,omitempty"`
	StartTime       string `json:"startTime"` // RFC3339
	EndTime         string `json:"endTime"`   // RFC3339
	Timezone        string `json:"timezone,omitempty"`
	LockMerchantRow bool   `json:"lockMerchantRow,omitempty"`
}

// EvaluateSlotResponse HTTP ответ с результатом оценки
type EvaluateSlotResponse struct {
	HasCapacity             bool   `json:"hasCapacity"`
	RosteredStaffCount      int    `json:"rosteredStaffCount"`
	AssignedBookingsCount   int    `json:"assignedBookingsCount"`
	UnassignedBookingsCount int    `json:"unassignedBookingsCount"`
	RemainingCapacity       int    `json:"remainingCapacity"`
	Unconstrained           bool   `json:"unconstrained"`
	Message                 string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EvaluateSlotRequest) ToUseCaseRequest(merchantID int64) (*evaluateSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &evaluateSlot.Request{
		MerchantID:      merchantID,
		LocationID:      r.LocationID,
		StartTime:       start,
		EndTime:         end,
		Timezone:        r.Timezone,
		LockMerchantRow: r.LockMerchantRow,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *evaluateSlot.Response) *EvaluateSlotResponse {
	return &EvaluateSlotResponse{
		HasCapacity:             resp.HasCapacity,
		RosteredStaffCount:      resp.RosteredStaffCount,
		AssignedBookingsCount:   resp.AssignedBookingsCount,
		UnassignedBookingsCount: resp.UnassignedBookingsCount,
		RemainingCapacity:       resp.RemainingCapacity,
		Unconstrained:           resp.Unconstrained,
		Message:                 resp.Message,
	}
}
