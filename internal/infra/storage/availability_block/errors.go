package availability_block

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок не найден у мерчанта
	ErrBlockNotFound = errors.New("availability_block.repository: block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability_block.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability_block.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability_block.repository: failed to scan row")
)
