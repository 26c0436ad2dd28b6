package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// SlotResponse модель слота для чтения
type SlotResponse struct {
	ID              int64
	StartTime       time.Time
	DurationMinutes int
	Status          string
	HoldUntil       *time.Time
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []*SlotResponse
	Total int
}

// ListSlotsRequest запрос списка слотов за временное окно
type ListSlotsRequest struct {
	From   time.Time
	To     time.Time
	Status *string
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotRangeFilter, error) {
	filter := domain.SlotRangeFilter{
		From: r.From,
		To:   r.To,
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return domain.SlotRangeFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus
func ToDomainSlotStatus(s string) (domain.SlotStatus, error) {
	switch domain.SlotStatus(s) {
	case domain.SlotFree, domain.SlotHeld, domain.SlotTaken:
		return domain.SlotStatus(s), nil
	default:
		return "", fmt.Errorf("unknown slot status %q", s)
	}
}

// FromDomainSlot конвертирует доменную модель в модель ответа.
// Ключ удержания наружу не отдается.
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		StartTime:       s.StartTime,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		HoldUntil:       s.HoldUntil,
	}
}

// FromDomainSlotList конвертирует список доменных моделей
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	out := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = FromDomainSlot(s)
	}
	return &SlotListResponse{Slots: out, Total: len(out)}
}
