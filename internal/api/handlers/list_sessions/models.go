package list_sessions

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

// SessionItem элемент списка сессий
type SessionItem struct {
	ID               int64   `json:"id"`
	SlotIDs          []int64 `json:"slotIds"`
	Status           string  `json:"status"`
	ScheduledStart   string  `json:"scheduledStart"`
	ScheduledMinutes int     `json:"scheduledMinutes"`
	CreatedAt        string  `json:"createdAt"`
}

// SessionListResponse HTTP response model
type SessionListResponse struct {
	Sessions []*SessionItem `json:"sessions"`
	Total    int            `json:"total"`
}

// ParseQuery собирает запрос к сервису из query-параметров.
// from/to принимаются в формате YYYY-MM-DD, границы дневные.
func ParseQuery(query url.Values, studentID int64) (*models.ListSessionsRequest, error) {
	req := &models.ListSessionsRequest{StudentID: &studentID}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		// Верхняя граница не включительно: конец указанного дня
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SessionListResponse) *SessionListResponse {
	items := make([]*SessionItem, len(resp.Sessions))
	for i, s := range resp.Sessions {
		items[i] = &SessionItem{
			ID:               s.ID,
			SlotIDs:          s.SlotIDs,
			Status:           s.Status,
			ScheduledStart:   s.ScheduledStart.Format(time.RFC3339),
			ScheduledMinutes: s.ScheduledMinutes,
			CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		}
	}
	return &SessionListResponse{Sessions: items, Total: resp.Total}
}
