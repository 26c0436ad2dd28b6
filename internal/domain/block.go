package domain

import (
	"errors"
	"time"
)

// Resolver errors are shared by every booking path; they map to a 409 at the
// API boundary and the caller is expected to pick a different time window.
var (
	// ErrDurationMismatch длительность не кратна шагу сетки слотов
	ErrDurationMismatch = errors.New("domain: duration is not a multiple of the slot grid step")

	// ErrWindowMissingSlots в запрошенном окне отсутствует часть слотов
	ErrWindowMissingSlots = errors.New("domain: booking window is missing slots")

	// ErrNotContiguous слоты в окне не образуют непрерывный блок
	ErrNotContiguous = errors.New("domain: slots in window are not contiguous")

	// ErrSlotUnavailable хотя бы один слот занят или удержан другим ключом
	ErrSlotUnavailable = errors.New("domain: slot is unavailable")
)

// ResolveBlock translates "duration D starting at start" into the exact
// ordered list of slot IDs that cover it, or fails.
//
// slots must be every row with start_time in [start, start+D), ordered by
// start_time, as fetched from the store. The grid step is discovered from the
// anchor slot's own duration, so a configured step change does not break
// resolution. holdKey may be empty: then only free slots qualify; otherwise
// slots already held under the same key qualify too.
//
// The check is read-only; the hold/claim write re-verifies the same predicate
// atomically to close the race window between resolution and stamping.
func ResolveBlock(slots []*Slot, start time.Time, durationMinutes int, holdKey string) ([]int64, error) {
	if len(slots) == 0 {
		return nil, ErrWindowMissingSlots
	}

	anchor := slots[0]
	if !anchor.StartTime.Equal(start) {
		// Нет слота в начале окна - разрыв на первой же позиции
		return nil, ErrWindowMissingSlots
	}

	stepMin := anchor.DurationMinutes
	if stepMin <= 0 || durationMinutes%stepMin != 0 {
		return nil, ErrDurationMismatch
	}

	needed := durationMinutes / stepMin
	if len(slots) != needed {
		return nil, ErrWindowMissingSlots
	}

	step := time.Duration(stepMin) * time.Minute
	ids := make([]int64, 0, needed)

	for i, slot := range slots {
		if i > 0 && !slot.StartTime.Equal(slots[i-1].StartTime.Add(step)) {
			return nil, ErrNotContiguous
		}
		if !slot.AvailableFor(holdKey) {
			return nil, ErrSlotUnavailable
		}
		ids = append(ids, slot.ID)
	}

	return ids, nil
}
