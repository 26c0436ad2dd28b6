package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	holdSlots "github.com/m04kA/SMC-CoachingService/internal/usecase/hold_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время начала, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры удержания"
	msgDurationMismatch   = "длительность не кратна шагу сетки слотов"
	msgWindowMissing      = "в запрошенном окне нет расписания"
	msgNotContiguous      = "слоты окна не образуют непрерывный блок"
	msgSlotUnavailable    = "запрошенный блок слотов недоступен"
	msgStartInPast        = "время начала уже прошло"
)

type Handler struct {
	useCase HoldSlotsUseCase
	logger  Logger
}

func NewHandler(useCase HoldSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /holds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, holdSlots.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, holdSlots.ErrStartInPast):
			h.logger.Warn("POST /holds - Start in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, holdSlots.ErrDurationMismatch):
			h.logger.Warn("POST /holds - Duration mismatch: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, holdSlots.ErrWindowMissingSlots):
			h.logger.Warn("POST /holds - Window missing slots: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgWindowMissing)

		case errors.Is(err, holdSlots.ErrNotContiguous):
			h.logger.Warn("POST /holds - Slots not contiguous: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgNotContiguous)

		case errors.Is(err, holdSlots.ErrSlotUnavailable):
			h.logger.Warn("POST /holds - Slot unavailable: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("POST /holds - Failed to create hold: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created: user_id=%d, hold_key=%s, session_id=%d, slots=%d",
		userID, result.HoldKey, result.SessionID, len(result.SlotIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
