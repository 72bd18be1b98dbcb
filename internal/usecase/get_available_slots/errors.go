package get_available_slots

import "errors"

var (
	// ErrMerchantNotFound возвращается, когда мерчант не найден
	ErrMerchantNotFound = errors.New("merchant not found")

	// ErrServiceNotFound возвращается, когда активная услуга не найдена у мерчанта
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound возвращается, когда активный сотрудник не найден у мерчанта
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
