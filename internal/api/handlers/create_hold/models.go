package create_hold

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	holdSlots "github.com/m04kA/SMC-CoachingService/internal/usecase/hold_slots"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "12:00"
	DurationMinutes int     `json:"durationMinutes"`
	HoldKey         *string `json:"holdKey,omitempty"` // для продления существующего удержания
	Notes           *string `json:"notes,omitempty"`
	ContactHandle   *string `json:"contactHandle,omitempty"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	HoldKey    string  `json:"holdKey"`
	HoldUntil  string  `json:"holdUntil"`
	SlotIDs    []int64 `json:"slotIds"`
	SessionID  int64   `json:"sessionId"`
	PaymentRef string  `json:"paymentRef"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(studentID int64) (*holdSlots.Request, error) {
	start, err := parseStart(r.Date, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &holdSlots.Request{
		StudentID:        studentID,
		Start:            start,
		ScheduledMinutes: r.DurationMinutes,
		HoldKey:          r.HoldKey,
		Notes:            r.Notes,
		ContactHandle:    r.ContactHandle,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *holdSlots.Response) *HoldResponse {
	return &HoldResponse{
		HoldKey:    resp.HoldKey,
		HoldUntil:  resp.HoldUntil.Format(time.RFC3339),
		SlotIDs:    resp.SlotIDs,
		SessionID:  resp.SessionID,
		PaymentRef: resp.PaymentRef,
	}
}

// parseStart собирает момент начала из даты и времени (UTC)
func parseStart(date, startTime string) (time.Time, error) {
	return time.Parse(domain.DateFormat+" "+domain.TimeFormat, date+" "+startTime)
}
