package promorule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда промо-правило не найдено
	ErrRuleNotFound = errors.New("promorule.repository: promo rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promorule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promorule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promorule.repository: failed to scan row")
)
