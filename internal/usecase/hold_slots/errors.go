package hold_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("hold_slots: invalid input data")

	// ErrDurationMismatch возвращается, когда длительность не кратна шагу сетки
	ErrDurationMismatch = errors.New("hold_slots: duration is not a multiple of the grid step")

	// ErrWindowMissingSlots возвращается, когда в запрошенном окне не хватает слотов
	// (разрыв в расписании либо окно выходит за горизонт генерации)
	ErrWindowMissingSlots = errors.New("hold_slots: requested window is missing slots")

	// ErrNotContiguous возвращается, когда слоты окна не образуют непрерывный блок
	ErrNotContiguous = errors.New("hold_slots: slots are not contiguous")

	// ErrSlotUnavailable возвращается, когда блок занят или удержан другим checkout
	ErrSlotUnavailable = errors.New("hold_slots: slot is not available")

	// ErrStartInPast возвращается при попытке удержать слоты в прошлом
	ErrStartInPast = errors.New("hold_slots: start time is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("hold_slots: internal error")
)
