package slots

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListWithFilter(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
