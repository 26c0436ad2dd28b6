package get_session_by_reference

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions"
)

const (
	msgInvalidPaymentRef = "некорректная платежная ссылка"
	msgNotFound          = "сессия не найдена"
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

// PaymentStatusResponse HTTP response model.
// Публичная ручка для поллинга статуса оплаты: отдает только то,
// что нужно экрану подтверждения, без деталей сессии.
type PaymentStatusResponse struct {
	SessionID      int64  `json:"sessionId"`
	Status         string `json:"status"`
	ScheduledStart string `json:"scheduledStart"`
}

// Handle GET /api/v1/sessions/by-reference/{paymentRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentRef := vars["paymentRef"]

	session, err := h.service.GetByPaymentRef(r.Context(), paymentRef)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /sessions/by-reference/{ref} - Invalid payment ref")
			handlers.RespondBadRequest(w, msgInvalidPaymentRef)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/by-reference/{ref} - Session not found: ref=%s", paymentRef)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /sessions/by-reference/{ref} - Failed to get session: ref=%s, error=%v",
				paymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/by-reference/{ref} - Session retrieved: session_id=%d, status=%s",
		session.ID, session.Status)
	handlers.RespondJSON(w, http.StatusOK, &PaymentStatusResponse{
		SessionID:      session.ID,
		Status:         session.Status,
		ScheduledStart: session.ScheduledStart.Format(time.RFC3339),
	})
}
