package run_maintenance

import (
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
)

type Handler struct {
	useCase RunMaintenanceUseCase
	logger  Logger
}

func NewHandler(useCase RunMaintenanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/maintenance/run
//
// Ручка для внешнего планировщика. Ошибки отдельных этапов не делают
// ответ не-2xx: прогон состоялся, отчет содержит детали.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /maintenance/run - Sweep failed to start: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /maintenance/run - Sweep finished: stages=%d, has_errors=%t",
		len(result.Stages), result.HasErrors())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
