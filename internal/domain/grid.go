package domain

import "time"

// GenerateDaySlots produces one slot seed per grid step within each open
// interval of the given day. The day must be a timezone-normalized midnight
// instant. Slot starts are aligned to multiples of stepMinutes from midnight
// and no slot crosses an interval boundary. No intervals means no slots.
//
// The function is pure; downstream insertion deduplicates by start_time, so
// calling it repeatedly for the same day is safe.
func GenerateDaySlots(day time.Time, intervals []OpenInterval, stepMinutes int) []SlotSeed {
	if stepMinutes <= 0 {
		return nil
	}

	seeds := make([]SlotSeed, 0)

	for _, interval := range intervals {
		if !interval.IsValid() {
			continue
		}

		// Первая граница сетки внутри интервала
		start := interval.OpenMinute
		if rem := start % stepMinutes; rem != 0 {
			start += stepMinutes - rem
		}

		for m := start; m+stepMinutes <= interval.CloseMinute; m += stepMinutes {
			seeds = append(seeds, SlotSeed{
				StartTime:       day.Add(time.Duration(m) * time.Minute),
				DurationMinutes: stepMinutes,
			})
		}
	}

	return seeds
}

// DayStart truncates a timestamp to midnight in its own location
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
