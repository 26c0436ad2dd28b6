package run_maintenance

import (
	"time"

	runMaintenance "github.com/m04kA/SMC-CoachingService/internal/usecase/run_maintenance"
)

// StageReport результат одного этапа обслуживания
type StageReport struct {
	Stage        string   `json:"stage"`
	RowsAffected int64    `json:"rowsAffected"`
	Error        *string  `json:"error,omitempty"`
	Details      []string `json:"details,omitempty"`
}

// MaintenanceResponse HTTP response model
type MaintenanceResponse struct {
	StartedAt  string        `json:"startedAt"`
	FinishedAt string        `json:"finishedAt"`
	Stages     []StageReport `json:"stages"`
	HasErrors  bool          `json:"hasErrors"`
}

// FromUseCaseResponse конвертирует отчет use case в HTTP response
func FromUseCaseResponse(resp *runMaintenance.Response) *MaintenanceResponse {
	stages := make([]StageReport, len(resp.Stages))
	for i, s := range resp.Stages {
		stages[i] = StageReport{
			Stage:        s.Stage,
			RowsAffected: s.RowsAffected,
			Error:        s.Error,
			Details:      s.Details,
		}
	}
	return &MaintenanceResponse{
		StartedAt:  resp.StartedAt.Format(time.RFC3339),
		FinishedAt: resp.FinishedAt.Format(time.RFC3339),
		Stages:     stages,
		HasErrors:  resp.HasErrors(),
	}
}
