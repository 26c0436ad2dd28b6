package run_maintenance

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteReclaimable(ctx context.Context, from, to, now time.Time) (int64, error)
	BulkInsert(ctx context.Context, seeds []domain.SlotSeed) (int64, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AvailabilityClient интерфейс клиента провайдера расписания
type AvailabilityClient interface {
	GetDayAvailability(ctx context.Context, day time.Time) ([]domain.OpenInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
