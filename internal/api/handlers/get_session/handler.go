package get_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgNotFound         = "сессия не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /sessions/{id} - Invalid input: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Студент видит только свои сессии
	if session.StudentID != userID {
		h.logger.Warn("GET /sessions/{id} - Access denied: session_id=%d, user_id=%d", sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved: session_id=%d, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(session))
}
