package blocks

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка не найдена у мерчанта
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
