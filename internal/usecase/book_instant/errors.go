package book_instant

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_instant: invalid input data")

	// ErrDurationMismatch возвращается, когда длительность не кратна шагу сетки
	ErrDurationMismatch = errors.New("book_instant: duration is not a multiple of the grid step")

	// ErrWindowMissingSlots возвращается, когда в запрошенном окне не хватает слотов
	ErrWindowMissingSlots = errors.New("book_instant: requested window is missing slots")

	// ErrNotContiguous возвращается, когда слоты окна не образуют непрерывный блок
	ErrNotContiguous = errors.New("book_instant: slots are not contiguous")

	// ErrSlotUnavailable возвращается, когда блок занят или удержан другим checkout
	ErrSlotUnavailable = errors.New("book_instant: slot is not available")

	// ErrStartInPast возвращается при попытке забронировать слоты в прошлом
	ErrStartInPast = errors.New("book_instant: start time is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_instant: internal error")
)
