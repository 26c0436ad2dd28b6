package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/service/slots"
)

const (
	msgInvalidDateRange = "некорректный диапазон дат, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?from=YYYY-MM-DD&to=YYYY-MM-DD&status=free
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput), errors.Is(err, slots.ErrInvalidTimeRange):
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /slots - Failed to list slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots listed: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
