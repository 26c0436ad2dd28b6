package payment_callback

import (
	"time"

	confirmPayment "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_payment"
)

// PaymentCallbackRequest HTTP request model (callback платежного провайдера)
type PaymentCallbackRequest struct {
	PaymentRef string `json:"paymentRef"`
}

// PaymentCallbackResponse HTTP response model
type PaymentCallbackResponse struct {
	SessionID      int64   `json:"sessionId"`
	SlotIDs        []int64 `json:"slotIds"`
	ScheduledStart string  `json:"scheduledStart"`
	AlreadyPaid    bool    `json:"alreadyPaid"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *PaymentCallbackResponse {
	return &PaymentCallbackResponse{
		SessionID:      resp.SessionID,
		SlotIDs:        resp.SlotIDs,
		ScheduledStart: resp.ScheduledStart.Format(time.RFC3339),
		AlreadyPaid:    resp.AlreadyPaid,
	}
}
