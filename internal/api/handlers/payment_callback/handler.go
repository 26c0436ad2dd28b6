package payment_callback

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPaymentRef  = "некорректная платежная ссылка"
	msgSessionNotFound    = "сессия с такой платежной ссылкой не найдена"
	msgSessionNotPayable  = "сессия не может быть оплачена"
	msgHoldLost           = "удержание истекло, слоты больше недоступны"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/callback
//
// Провайдер повторяет callback до получения 2xx, поэтому повторная
// доставка по уже оплаченной сессии отвечает 200 с alreadyPaid=true.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PaymentCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{PaymentRef: req.PaymentRef})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/callback - Invalid payment ref")
			handlers.RespondBadRequest(w, msgInvalidPaymentRef)

		case errors.Is(err, confirmPayment.ErrSessionNotFound):
			h.logger.Warn("POST /payments/callback - Session not found: ref=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, confirmPayment.ErrSessionNotPayable):
			h.logger.Warn("POST /payments/callback - Session not payable: ref=%s", req.PaymentRef)
			handlers.RespondError(w, http.StatusConflict, msgSessionNotPayable)

		case errors.Is(err, confirmPayment.ErrSlotUnavailable):
			h.logger.Warn("POST /payments/callback - Held block lost: ref=%s", req.PaymentRef)
			handlers.RespondError(w, http.StatusConflict, msgHoldLost)

		default:
			h.logger.Error("POST /payments/callback - Failed to confirm payment: ref=%s, error=%v",
				req.PaymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Payment confirmed: ref=%s, session_id=%d, already_paid=%t",
		req.PaymentRef, result.SessionID, result.AlreadyPaid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
