package evaluate_slot

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные и возвращает часовой пояс мерчанта
func validateRequest(req *Request) (*time.Location, error) {
	if req.MerchantID <= 0 {
		return nil, fmt.Errorf("%w: merchantID must be positive", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	start := req.StartTime.In(loc)
	end := req.EndTime.In(loc)
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if (sy != ey || sm != em || sd != ed) && !endsAtMidnight(start, end) {
		return nil, fmt.Errorf("%w: startTime and endTime must be on the same local date", ErrInvalidInput)
	}

	return loc, nil
}

// endsAtMidnight проверяет, что end ровно полночь следующего за start дня (окно до "24:00")
func endsAtMidnight(start, end time.Time) bool {
	y, m, d := start.Date()
	return end.Equal(time.Date(y, m, d+1, 0, 0, 0, 0, start.Location()))
}
