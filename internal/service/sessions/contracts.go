package sessions

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Session, error)
	ListWithFilter(ctx context.Context, filter domain.SessionFilter) ([]*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
