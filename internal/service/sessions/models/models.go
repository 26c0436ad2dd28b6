package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SessionResponse модель сессии для чтения
type SessionResponse struct {
	ID               int64
	SlotID           int64
	SlotIDs          []int64
	Status           string
	ScheduledStart   time.Time
	ScheduledMinutes int
	PaymentRef       *string
	StudentID        int64
	Notes            *string
	ContactHandle    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SessionListResponse список сессий
type SessionListResponse struct {
	Sessions []*SessionResponse
	Total    int
}

// ListSessionsRequest запрос списка сессий с фильтрацией
type ListSessionsRequest struct {
	From      *time.Time
	To        *time.Time
	Status    *string
	StudentID *int64
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *ListSessionsRequest) ToDomainFilter() (domain.SessionFilter, error) {
	filter := domain.SessionFilter{
		From:      r.From,
		To:        r.To,
		StudentID: r.StudentID,
	}

	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return domain.SessionFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus
func ToDomainSessionStatus(s string) (domain.SessionStatus, error) {
	switch domain.SessionStatus(s) {
	case domain.SessionUnpaid, domain.SessionPaid, domain.SessionCancelled:
		return domain.SessionStatus(s), nil
	default:
		return "", fmt.Errorf("unknown session status %q", s)
	}
}

// FromDomainSession конвертирует доменную модель в модель ответа
func FromDomainSession(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		ID:               s.ID,
		SlotID:           s.SlotID,
		SlotIDs:          s.SlotIDs,
		Status:           string(s.Status),
		ScheduledStart:   s.ScheduledStart,
		ScheduledMinutes: s.ScheduledMinutes,
		PaymentRef:       s.PaymentRef,
		StudentID:        s.StudentID,
		Notes:            s.Notes,
		ContactHandle:    s.ContactHandle,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список доменных моделей
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	out := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = FromDomainSession(s)
	}
	return &SessionListResponse{Sessions: out, Total: len(out)}
}
