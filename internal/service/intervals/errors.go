package intervals

import "errors"

var (
	// ErrStaffNotFound возвращается, когда активный сотрудник не найден у мерчанта
	ErrStaffNotFound = errors.New("staff not found")

	// ErrUnknownMergeMode возвращается для неизвестного режима объединения расписаний
	ErrUnknownMergeMode = errors.New("unknown schedule merge mode")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("intervals: internal error")
)
