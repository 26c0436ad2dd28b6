package list_slots

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/service/slots/models"
)

// SlotItem элемент календаря слотов
type SlotItem struct {
	ID              int64   `json:"id"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	HoldUntil       *string `json:"holdUntil,omitempty"`
}

// SlotListResponse HTTP response model
type SlotListResponse struct {
	Slots []*SlotItem `json:"slots"`
	Total int         `json:"total"`
}

// ParseQuery собирает запрос к сервису из query-параметров.
// from обязателен, to по умолчанию - конец дня from.
func ParseQuery(query url.Values) (*models.ListSlotsRequest, error) {
	req := &models.ListSlotsRequest{}

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		return nil, err
	}
	req.From = from

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.To = to.AddDate(0, 0, 1)
	} else {
		req.To = from.AddDate(0, 0, 1)
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotListResponse) *SlotListResponse {
	items := make([]*SlotItem, len(resp.Slots))
	for i, s := range resp.Slots {
		item := &SlotItem{
			ID:              s.ID,
			StartTime:       s.StartTime.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
		}
		if s.HoldUntil != nil {
			formatted := s.HoldUntil.Format(time.RFC3339)
			item.HoldUntil = &formatted
		}
		items[i] = item
	}
	return &SlotListResponse{Slots: items, Total: resp.Total}
}
