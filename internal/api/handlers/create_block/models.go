package create_block

import (
	"time"

	blockModels "github.com/m04kA/SMC-AvailabilityService/internal/service/blocks/models"
	createBlock "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_block"
)

// CreateBlockRequest HTTP запрос на создание блокировки
type CreateBlockRequest struct {
	LocationID       *int64  `json:"locationId,omitempty"`
	StartTime        string  `json:"startTime"` // RFC3339
	EndTime          string  `json:"endTime"`   // RFC3339
	Reason           *string `json:"reason,omitempty"`
	SuppressWarnings bool    `json:"suppressWarnings,omitempty"`
}

// ConflictingBooking бронирование, попавшее под блокировку
type ConflictingBooking struct {
	ID         int64     `json:"id"`
	LocationID *int64    `json:"locationId,omitempty"`
	ServiceID  int64     `json:"serviceId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
}

// CreateBlockResponse HTTP ответ с объединённой блокировкой
type CreateBlockResponse struct {
	Block       *blockModels.BlockResponse `json:"block"`
	Warning     bool                       `json:"warning"`
	Conflicts   []ConflictingBooking       `json:"conflicts"`
	MergedCount int                        `json:"mergedCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest(merchantID, staffID int64) (*createBlock.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		MerchantID:       merchantID,
		StaffID:          staffID,
		LocationID:       r.LocationID,
		StartTime:        start,
		EndTime:          end,
		Reason:           r.Reason,
		SuppressWarnings: r.SuppressWarnings,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *CreateBlockResponse {
	conflicts := make([]ConflictingBooking, 0, len(resp.Conflicts))
	for _, b := range resp.Conflicts {
		conflicts = append(conflicts, ConflictingBooking{
			ID:         b.ID,
			LocationID: b.LocationID,
			ServiceID:  b.ServiceID,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			Status:     string(b.Status),
		})
	}

	return &CreateBlockResponse{
		Block:       blockModels.FromDomainBlock(resp.Block),
		Warning:     resp.Warning,
		Conflicts:   conflicts,
		MergedCount: resp.MergedCount,
	}
}
