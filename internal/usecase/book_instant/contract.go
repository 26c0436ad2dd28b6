package book_instant

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByTimeRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error)
	ClaimFree(ctx context.Context, slotIDs []int64) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	EnsureSessionDoc(ctx context.Context, sessionID, studentID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
