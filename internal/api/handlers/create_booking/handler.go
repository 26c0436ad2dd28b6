package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	bookInstant "github.com/m04kA/SMC-CoachingService/internal/usecase/book_instant"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время начала, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgDurationMismatch   = "длительность не кратна шагу сетки слотов"
	msgWindowMissing      = "в запрошенном окне нет расписания"
	msgNotContiguous      = "слоты окна не образуют непрерывный блок"
	msgSlotUnavailable    = "запрошенный блок слотов недоступен"
	msgStartInPast        = "время начала уже прошло"
)

type Handler struct {
	useCase BookInstantUseCase
	logger  Logger
}

func NewHandler(useCase BookInstantUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookInstant.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookInstant.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, bookInstant.ErrDurationMismatch):
			h.logger.Warn("POST /bookings - Duration mismatch: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, bookInstant.ErrWindowMissingSlots):
			h.logger.Warn("POST /bookings - Window missing slots: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgWindowMissing)

		case errors.Is(err, bookInstant.ErrNotContiguous):
			h.logger.Warn("POST /bookings - Slots not contiguous: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgNotContiguous)

		case errors.Is(err, bookInstant.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: user_id=%d, session_id=%d, slots=%d",
		userID, result.SessionID, len(result.SlotIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
