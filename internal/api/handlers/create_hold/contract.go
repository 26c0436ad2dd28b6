package create_hold

import (
	"context"

	holdSlots "github.com/m04kA/SMC-CoachingService/internal/usecase/hold_slots"
)

type HoldSlotsUseCase interface {
	Execute(ctx context.Context, req *holdSlots.Request) (*holdSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
