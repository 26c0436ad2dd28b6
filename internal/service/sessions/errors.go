package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
