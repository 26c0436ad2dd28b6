package list_sessions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidDateRange = "некорректный диапазон дат, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions?from=YYYY-MM-DD&to=YYYY-MM-DD&status=paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseQuery(r.URL.Query(), userID)
	if err != nil {
		h.logger.Warn("GET /sessions - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput), errors.Is(err, sessions.ErrInvalidTimeRange):
			h.logger.Warn("GET /sessions - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /sessions - Failed to list sessions: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions - Sessions listed: user_id=%d, total=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
