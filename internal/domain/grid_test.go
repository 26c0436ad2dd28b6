package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDaySlots(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("two hour interval on a 15 minute grid yields 8 slots", func(t *testing.T) {
		intervals := []OpenInterval{{OpenMinute: 12 * 60, CloseMinute: 14 * 60}}

		seeds := GenerateDaySlots(day, intervals, 15)

		require.Len(t, seeds, 8)
		assert.Equal(t, day.Add(12*time.Hour), seeds[0].StartTime)
		assert.Equal(t, day.Add(13*time.Hour+45*time.Minute), seeds[7].StartTime)
		for _, seed := range seeds {
			assert.Equal(t, 15, seed.DurationMinutes)
		}
	})

	t.Run("unaligned open minute is rounded up to the next grid line", func(t *testing.T) {
		// Открытие в 9:05 - первый слот в 9:15
		intervals := []OpenInterval{{OpenMinute: 9*60 + 5, CloseMinute: 10 * 60}}

		seeds := GenerateDaySlots(day, intervals, 15)

		require.Len(t, seeds, 3)
		assert.Equal(t, day.Add(9*time.Hour+15*time.Minute), seeds[0].StartTime)
	})

	t.Run("slot never crosses the interval close", func(t *testing.T) {
		// Закрытие в 10:10 - слот 10:00 не влезает
		intervals := []OpenInterval{{OpenMinute: 9 * 60, CloseMinute: 10*60 + 10}}

		seeds := GenerateDaySlots(day, intervals, 30)

		require.Len(t, seeds, 2)
		assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), seeds[1].StartTime)
	})

	t.Run("multiple intervals produce slots for each", func(t *testing.T) {
		intervals := []OpenInterval{
			{OpenMinute: 9 * 60, CloseMinute: 10 * 60},
			{OpenMinute: 14 * 60, CloseMinute: 15 * 60},
		}

		seeds := GenerateDaySlots(day, intervals, 30)

		require.Len(t, seeds, 4)
		assert.Equal(t, day.Add(9*time.Hour), seeds[0].StartTime)
		assert.Equal(t, day.Add(14*time.Hour), seeds[2].StartTime)
	})

	t.Run("closed day yields no slots", func(t *testing.T) {
		assert.Empty(t, GenerateDaySlots(day, nil, 15))
	})

	t.Run("invalid intervals are skipped", func(t *testing.T) {
		intervals := []OpenInterval{
			{OpenMinute: 10 * 60, CloseMinute: 9 * 60},  // закрытие раньше открытия
			{OpenMinute: -30, CloseMinute: 60},          // отрицательное открытие
			{OpenMinute: 23 * 60, CloseMinute: 25 * 60}, // выход за сутки
		}

		assert.Empty(t, GenerateDaySlots(day, intervals, 15))
	})

	t.Run("interval shorter than the step yields no slots", func(t *testing.T) {
		intervals := []OpenInterval{{OpenMinute: 9 * 60, CloseMinute: 9*60 + 10}}

		assert.Empty(t, GenerateDaySlots(day, intervals, 15))
	})

	t.Run("regeneration is deterministic", func(t *testing.T) {
		intervals := []OpenInterval{{OpenMinute: 8 * 60, CloseMinute: 20 * 60}}

		first := GenerateDaySlots(day, intervals, 15)
		second := GenerateDaySlots(day, intervals, 15)

		assert.Equal(t, first, second)
	})
}

func TestDayStart(t *testing.T) {
	ts := time.Date(2026, 9, 15, 17, 42, 13, 999, time.UTC)

	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), DayStart(ts))
}
