package list_blocks

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocks/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(merchantID, staffID int64, locationIDStr, fromStr, toStr string) (*models.ListRequest, error) {
	req := &models.ListRequest{
		MerchantID: merchantID,
		StaffID:    &staffID,
	}

	if locationIDStr != "" {
		locationID, err := strconv.ParseInt(locationIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.LocationID = &locationID
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}
