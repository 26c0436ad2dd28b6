package run_maintenance

import (
	"context"

	runMaintenance "github.com/m04kA/SMC-CoachingService/internal/usecase/run_maintenance"
)

type RunMaintenanceUseCase interface {
	Execute(ctx context.Context) (*runMaintenance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
