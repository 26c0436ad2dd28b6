package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionStatus represents the status of a coaching session booking
type SessionStatus string

const (
	SessionUnpaid    SessionStatus = "unpaid"
	SessionPaid      SessionStatus = "paid"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is a reservation spanning one or more contiguous slots.
// A paid session references slots that are all taken and exactly match the
// contiguous block computed at booking time. paid is terminal.
type Session struct {
	ID               int64
	SlotID           int64   // anchor slot
	SlotIDs          []int64 // full ordered block, stored as CSV
	Status           SessionStatus
	ScheduledStart   time.Time
	ScheduledMinutes int // requested live duration, distinct from the grid step

	HoldKey    *string // checkout hold key, set for the hold-then-pay flow
	PaymentRef *string // external payment provider reference

	StudentID     int64
	Notes         *string
	ContactHandle *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid returns true if the session has been confirmed and paid
func (s *Session) IsPaid() bool {
	return s.Status == SessionPaid
}

// CanBePaid returns true if the session may still transition to paid
func (s *Session) CanBePaid() bool {
	return s.Status == SessionUnpaid
}

// SessionFilter фильтр для выборки сессий
type SessionFilter struct {
	From      *time.Time     // Начало периода по scheduled_start (опционально)
	To        *time.Time     // Конец периода (опционально)
	Status    *SessionStatus // Фильтр по статусу (опционально)
	StudentID *int64         // Фильтр по студенту (опционально)
}

// SessionDoc is the per-session documentation record, numbered sequentially
// per student (first session => 1, and so on)
type SessionDoc struct {
	ID        int64
	SessionID int64
	StudentID int64
	DocNumber int
	CreatedAt time.Time
}

// EncodeSlotIDs сериализует список ID слотов в CSV для хранения
func EncodeSlotIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeSlotIDs разбирает CSV со списком ID слотов
func DecodeSlotIDs(csv string) ([]int64, error) {
	if csv == "" {
		return []int64{}, nil
	}

	parts := strings.Split(csv, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("domain: invalid slot id %q in block: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
