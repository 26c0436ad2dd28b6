package get_session_by_reference

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

type SessionService interface {
	GetByPaymentRef(ctx context.Context, paymentRef string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
