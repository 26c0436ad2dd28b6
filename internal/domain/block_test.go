package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWindow(start time.Time, stepMinutes, count int) []*Slot {
	slots := make([]*Slot, 0, count)
	for i := 0; i < count; i++ {
		slots = append(slots, &Slot{
			ID:              int64(i + 1),
			StartTime:       start.Add(time.Duration(i*stepMinutes) * time.Minute),
			DurationMinutes: stepMinutes,
			Status:          SlotFree,
		})
	}
	return slots
}

func TestResolveBlock(t *testing.T) {
	start := time.Date(2026, 9, 15, 12, 15, 0, 0, time.UTC)

	t.Run("60 minute block resolves to 4 slots on a 15 minute grid", func(t *testing.T) {
		window := makeWindow(start, 15, 4)

		ids, err := ResolveBlock(window, start, 60, "")

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	})

	t.Run("empty window means missing slots", func(t *testing.T) {
		_, err := ResolveBlock(nil, start, 60, "")

		assert.ErrorIs(t, err, ErrWindowMissingSlots)
	})

	t.Run("window without anchor slot means missing slots", func(t *testing.T) {
		// Первый слот окна начинается позже запрошенного старта
		window := makeWindow(start.Add(15*time.Minute), 15, 3)

		_, err := ResolveBlock(window, start, 60, "")

		assert.ErrorIs(t, err, ErrWindowMissingSlots)
	})

	t.Run("duration not divisible by the grid step", func(t *testing.T) {
		window := makeWindow(start, 15, 4)

		_, err := ResolveBlock(window, start, 50, "")

		assert.ErrorIs(t, err, ErrDurationMismatch)
	})

	t.Run("short window means missing slots", func(t *testing.T) {
		window := makeWindow(start, 15, 3)

		_, err := ResolveBlock(window, start, 60, "")

		assert.ErrorIs(t, err, ErrWindowMissingSlots)
	})

	t.Run("gap inside the window breaks contiguity", func(t *testing.T) {
		window := makeWindow(start, 15, 4)
		// Сдвигаем третий слот - между вторым и третьим образуется дыра
		window[2].StartTime = window[2].StartTime.Add(15 * time.Minute)
		window[3].StartTime = window[3].StartTime.Add(15 * time.Minute)

		_, err := ResolveBlock(window, start, 60, "")

		assert.ErrorIs(t, err, ErrNotContiguous)
	})

	t.Run("taken slot makes the block unavailable", func(t *testing.T) {
		window := makeWindow(start, 15, 4)
		window[2].Status = SlotTaken

		_, err := ResolveBlock(window, start, 60, "")

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("slot held by another key makes the block unavailable", func(t *testing.T) {
		window := makeWindow(start, 15, 4)
		otherKey := "other-checkout"
		window[1].Status = SlotHeld
		window[1].HoldKey = &otherKey

		_, err := ResolveBlock(window, start, 60, "mine")

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("slot held by the same key still qualifies", func(t *testing.T) {
		window := makeWindow(start, 15, 4)
		mine := "my-checkout"
		until := start.Add(10 * time.Minute)
		for _, slot := range window {
			slot.Status = SlotHeld
			slot.HoldKey = &mine
			slot.HoldUntil = &until
		}

		ids, err := ResolveBlock(window, start, 60, mine)

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	})

	t.Run("empty hold key never matches held slots", func(t *testing.T) {
		window := makeWindow(start, 15, 4)
		empty := ""
		window[0].Status = SlotHeld
		window[0].HoldKey = &empty

		_, err := ResolveBlock(window, start, 60, "")

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("grid step is discovered from the anchor slot", func(t *testing.T) {
		window := makeWindow(start, 30, 2)

		ids, err := ResolveBlock(window, start, 60, "")

		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})
}
