package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrSessionNotFound возвращается, когда сессия с такой платежной ссылкой не найдена
	ErrSessionNotFound = errors.New("confirm_payment: session not found")

	// ErrSessionNotPayable возвращается, когда сессия отменена и не может быть оплачена
	ErrSessionNotPayable = errors.New("confirm_payment: session cannot transition to paid")

	// ErrSlotUnavailable возвращается, когда удержание истекло или блок занят другим
	// claim-ом: оплата пришла слишком поздно, слоты вернулись в оборот
	ErrSlotUnavailable = errors.New("confirm_payment: held block is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
