package domain

// Service is something a merchant sells, with optional buffers around it.
type Service struct {
	ID                   int64
	MerchantID           int64
	Name                 string
	DurationMinutes      int
	PaddingBeforeMinutes int
	PaddingAfterMinutes  int
	IsActive             bool
}

// TotalMinutes returns the padded span reserved for a booking of the given core duration.
func (s *Service) TotalMinutes(duration int) int {
	return s.PaddingBeforeMinutes + duration + s.PaddingAfterMinutes
}
