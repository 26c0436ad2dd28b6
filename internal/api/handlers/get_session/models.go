package get_session

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

// SessionResponse HTTP response model
type SessionResponse struct {
	ID               int64   `json:"id"`
	SlotIDs          []int64 `json:"slotIds"`
	Status           string  `json:"status"`
	ScheduledStart   string  `json:"scheduledStart"`
	ScheduledMinutes int     `json:"scheduledMinutes"`
	PaymentRef       *string `json:"paymentRef,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	ContactHandle    *string `json:"contactHandle,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(s *models.SessionResponse) *SessionResponse {
	return &SessionResponse{
		ID:               s.ID,
		SlotIDs:          s.SlotIDs,
		Status:           s.Status,
		ScheduledStart:   s.ScheduledStart.Format(time.RFC3339),
		ScheduledMinutes: s.ScheduledMinutes,
		PaymentRef:       s.PaymentRef,
		Notes:            s.Notes,
		ContactHandle:    s.ContactHandle,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
	}
}
