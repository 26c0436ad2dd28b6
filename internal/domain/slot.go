package domain

import "time"

// SlotStatus represents the lifecycle state of a slot
type SlotStatus string

const (
	SlotFree  SlotStatus = "free"
	SlotHeld  SlotStatus = "held"
	SlotTaken SlotStatus = "taken"
)

// Slot is the atomic bookable unit: one fixed grid step on the calendar.
// Invariants: status=free <=> hold_key and hold_until are both nil;
// status=held => hold_key is set; status=taken is terminal for normal flow.
type Slot struct {
	ID              int64
	StartTime       time.Time // grid-aligned, UTC
	DurationMinutes int       // grid step, shared by all slots
	Status          SlotStatus
	HoldKey         *string
	HoldUntil       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the slot
func (s *Slot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsFree returns true if the slot is not held and not taken
func (s *Slot) IsFree() bool {
	return s.Status == SlotFree
}

// IsTaken returns true if the slot belongs to a confirmed session
func (s *Slot) IsTaken() bool {
	return s.Status == SlotTaken
}

// IsHeldBy returns true if the slot is held under the given key
func (s *Slot) IsHeldBy(key string) bool {
	return s.Status == SlotHeld && s.HoldKey != nil && *s.HoldKey == key
}

// HoldExpired returns true if the slot is held and its hold TTL has lapsed
func (s *Slot) HoldExpired(now time.Time) bool {
	return s.Status == SlotHeld && (s.HoldUntil == nil || s.HoldUntil.Before(now))
}

// AvailableFor returns true if the slot can be reserved by the given hold key:
// either free, or already held under the same key
func (s *Slot) AvailableFor(key string) bool {
	if s.Status == SlotFree {
		return true
	}
	return key != "" && s.IsHeldBy(key)
}

// SlotSeed is a slot descriptor produced by the grid generator,
// before the row exists in the store
type SlotSeed struct {
	StartTime       time.Time
	DurationMinutes int
}

// SlotRangeFilter фильтр для выборки слотов по временному окну
type SlotRangeFilter struct {
	From   time.Time   // Начало окна (включительно)
	To     time.Time   // Конец окна (не включительно)
	Status *SlotStatus // Фильтр по статусу (опционально)
}
