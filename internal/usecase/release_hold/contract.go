package release_hold

import "context"

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseHold(ctx context.Context, holdKey string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
