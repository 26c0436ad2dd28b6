package availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availability client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("availability client: invalid response")

	// ErrUnavailable возвращается, когда провайдер расписания недоступен
	// Затрагивает генерацию слотов только на запрошенный день
	ErrUnavailable = errors.New("availability client: provider unavailable")
)
