package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrHoldLost возвращается, когда условное обновление затронуло не все слоты блока:
	// конкурирующий checkout успел удержать или занять часть окна
	ErrHoldLost = errors.New("slot.repository: hold precondition failed for part of the block")

	// ErrClaimConflict возвращается, когда claim затронул не все слоты блока
	// Вся транзакция должна быть откатана вызывающей стороной
	ErrClaimConflict = errors.New("slot.repository: claim affected fewer rows than expected")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
