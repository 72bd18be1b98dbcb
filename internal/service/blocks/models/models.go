package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidPeriod возвращается, когда From не раньше To
	ErrInvalidPeriod = errors.New("from must be before to")

	// ErrInvalidMerchant возвращается при неположительном ID мерчанта
	ErrInvalidMerchant = errors.New("merchantId must be positive")
)

// Request модели

// ListRequest запрос на получение блокировок мерчанта
type ListRequest struct {
	MerchantID int64      `json:"merchantId"`
	StaffID    *int64     `json:"staffId,omitempty"`    // Фильтр по сотруднику (опционально)
	LocationID *int64     `json:"locationId,omitempty"` // Фильтр по локации (опционально)
	From       *time.Time `json:"from,omitempty"`       // Блокировки, заканчивающиеся после From
	To         *time.Time `json:"to,omitempty"`         // Блокировки, начинающиеся до To
}

// Validate проверяет согласованность фильтров
func (r *ListRequest) Validate() error {
	if r.MerchantID <= 0 {
		return ErrInvalidMerchant
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return ErrInvalidPeriod
	}
	return nil
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() domain.BlocksFilter {
	return domain.BlocksFilter{
		MerchantID: r.MerchantID,
		StaffID:    r.StaffID,
		LocationID: r.LocationID,
		From:       r.From,
		To:         r.To,
	}
}

// Response модели

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID         int64     `json:"id"`
	MerchantID int64     `json:"merchantId"`
	StaffID    int64     `json:"staffId"`
	LocationID *int64    `json:"locationId,omitempty"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
	Total  int             `json:"total"`
}

// FromDomainBlock конвертирует domain блокировку в response
func FromDomainBlock(block *domain.StaffAvailabilityBlock) *BlockResponse {
	return &BlockResponse{
		ID:         block.ID,
		MerchantID: block.MerchantID,
		StaffID:    block.StaffID,
		LocationID: block.LocationID,
		StartTime:  block.StartTime,
		EndTime:    block.EndTime,
		Reason:     block.Reason,
		CreatedAt:  block.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список блокировок в response
func FromDomainBlockList(blocks []*domain.StaffAvailabilityBlock) *BlockListResponse {
	responses := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		responses = append(responses, *FromDomainBlock(b))
	}
	return &BlockListResponse{
		Blocks: responses,
		Total:  len(responses),
	}
}
