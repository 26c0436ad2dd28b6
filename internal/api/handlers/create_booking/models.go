package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookInstant "github.com/m04kA/SMC-CoachingService/internal/usecase/book_instant"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "12:00"
	DurationMinutes int     `json:"durationMinutes"`
	PaymentRef      *string `json:"paymentRef,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ContactHandle   *string `json:"contactHandle,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	SessionID        int64   `json:"sessionId"`
	SlotIDs          []int64 `json:"slotIds"`
	Status           string  `json:"status"`
	ScheduledStart   string  `json:"scheduledStart"`
	ScheduledMinutes int     `json:"scheduledMinutes"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (*bookInstant.Request, error) {
	start, err := time.Parse(domain.DateFormat+" "+domain.TimeFormat, r.Date+" "+r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookInstant.Request{
		StudentID:        studentID,
		Start:            start,
		ScheduledMinutes: r.DurationMinutes,
		PaymentRef:       r.PaymentRef,
		Notes:            r.Notes,
		ContactHandle:    r.ContactHandle,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookInstant.Response) *BookingResponse {
	return &BookingResponse{
		SessionID:        resp.SessionID,
		SlotIDs:          resp.SlotIDs,
		Status:           resp.Status,
		ScheduledStart:   resp.ScheduledStart.Format(time.RFC3339),
		ScheduledMinutes: resp.ScheduledMinutes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
