package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные и возвращает часовой пояс запроса
func validateRequest(req *Request, maxRangeDays int) (*time.Location, error) {
	if req.MerchantID <= 0 {
		return nil, fmt.Errorf("%w: merchantID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.DurationOverride != nil && *req.DurationOverride <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	days := daysBetween(req.StartDate, req.EndDate)
	if days < 0 {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}
	if days+1 > maxRangeDays {
		return nil, fmt.Errorf("%w: date range must not exceed %d days", ErrInvalidInput, maxRangeDays)
	}

	return loc, nil
}
