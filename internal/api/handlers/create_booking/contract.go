package create_booking

import (
	"context"

	bookInstant "github.com/m04kA/SMC-CoachingService/internal/usecase/book_instant"
)

type BookInstantUseCase interface {
	Execute(ctx context.Context, req *bookInstant.Request) (*bookInstant.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
