package merchant

import "errors"

var (
	// ErrMerchantNotFound возвращается, когда мерчант не найден
	ErrMerchantNotFound = errors.New("merchant.repository: merchant not found")

	// ErrSettingsNotFound возвращается, когда у мерчанта нет настроек
	ErrSettingsNotFound = errors.New("merchant.repository: settings not found")

	// ErrInvalidSettings возвращается, когда настройки не удалось разобрать
	ErrInvalidSettings = errors.New("merchant.repository: invalid settings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("merchant.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("merchant.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("merchant.repository: failed to scan row")
)
