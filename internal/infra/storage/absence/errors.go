package absence

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда период отсутствия не найден
	ErrAbsenceNotFound = errors.New("absence.repository: absence not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("absence.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("absence.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("absence.repository: failed to scan row")
)
