package run_maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

type fakeSlotRepo struct {
	deleteBeforeErr error

	deletedBefore   []time.Time
	reclaimedRanges [][2]time.Time
	inserted        [][]domain.SlotSeed
}

func (f *fakeSlotRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if f.deleteBeforeErr != nil {
		return 0, f.deleteBeforeErr
	}
	f.deletedBefore = append(f.deletedBefore, cutoff)
	return 3, nil
}

func (f *fakeSlotRepo) DeleteReclaimable(_ context.Context, from, to, _ time.Time) (int64, error) {
	f.reclaimedRanges = append(f.reclaimedRanges, [2]time.Time{from, to})
	return 2, nil
}

func (f *fakeSlotRepo) BulkInsert(_ context.Context, seeds []domain.SlotSeed) (int64, error) {
	f.inserted = append(f.inserted, seeds)
	return int64(len(seeds)), nil
}

type fakeSessionRepo struct {
	cutoffs []time.Time
}

func (f *fakeSessionRepo) DeleteUnpaidBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 1, nil
}

type fakeAvailability struct {
	intervals map[string][]domain.OpenInterval
	errDays   map[string]error
}

func (f *fakeAvailability) GetDayAvailability(_ context.Context, day time.Time) ([]domain.OpenInterval, error) {
	key := day.Format(domain.DateFormat)
	if err, ok := f.errDays[key]; ok {
		return nil, err
	}
	return f.intervals[key], nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func stageByName(t *testing.T, resp *Response, name string) StageResult {
	t.Helper()
	for _, s := range resp.Stages {
		if s.Stage == name {
			return s
		}
	}
	t.Fatalf("stage %s not found in report", name)
	return StageResult{}
}

func TestRunMaintenance_Execute(t *testing.T) {
	// 10:07 - середина дня, чтобы проверить отбрасывание прошедших слотов
	now := time.Date(2026, 9, 15, 10, 7, 0, 0, time.UTC)
	today := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	cfg := Config{StepMinutes: 15, HorizonDays: 2, UnpaidRetentionHours: 24}

	allDayOpen := []domain.OpenInterval{{OpenMinute: 9 * 60, CloseMinute: 11 * 60}}

	newUC := func(slots *fakeSlotRepo, sessions *fakeSessionRepo, avail *fakeAvailability) *UseCase {
		uc := NewUseCase(slots, sessions, avail, cfg, nopLogger{})
		uc.timeProvider = &fixedTime{now: now}
		return uc
	}

	t.Run("clean run reports all four stages in order", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		sessions := &fakeSessionRepo{}
		avail := &fakeAvailability{intervals: map[string][]domain.OpenInterval{
			"2026-09-15": allDayOpen,
			"2026-09-16": allDayOpen,
		}}
		uc := newUC(slots, sessions, avail)

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		require.Len(t, resp.Stages, 4)
		assert.Equal(t, StageDeletePast, resp.Stages[0].Stage)
		assert.Equal(t, StageReclaimExpired, resp.Stages[1].Stage)
		assert.Equal(t, StageRegenerate, resp.Stages[2].Stage)
		assert.Equal(t, StageCleanupSessions, resp.Stages[3].Stage)
		assert.False(t, resp.HasErrors())

		// Прошедшие слоты удаляются до начала текущего дня
		require.Len(t, slots.deletedBefore, 1)
		assert.Equal(t, today, slots.deletedBefore[0])

		// Снятие истекших hold-ов покрывает весь горизонт
		require.Len(t, slots.reclaimedRanges, 1)
		assert.Equal(t, today, slots.reclaimedRanges[0][0])
		assert.Equal(t, today.AddDate(0, 0, 2), slots.reclaimedRanges[0][1])

		// Неоплаченные сессии старше срока хранения удаляются
		require.Len(t, sessions.cutoffs, 1)
		assert.Equal(t, now.Add(-24*time.Hour), sessions.cutoffs[0])
	})

	t.Run("regeneration drops already-past slots for today only", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		avail := &fakeAvailability{intervals: map[string][]domain.OpenInterval{
			"2026-09-15": allDayOpen,
			"2026-09-16": allDayOpen,
		}}
		uc := newUC(slots, &fakeSessionRepo{}, avail)

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		require.Len(t, slots.inserted, 2)

		// Сегодня 9:00-11:00 по 15 минут это 8 слотов, но 10:07 уже прошло
		// мимо пяти из них - остаются 10:15, 10:30, 10:45
		require.Len(t, slots.inserted[0], 3)
		assert.Equal(t, today.Add(10*time.Hour+15*time.Minute), slots.inserted[0][0].StartTime)

		// Завтра генерируется целиком
		assert.Len(t, slots.inserted[1], 8)

		regen := stageByName(t, resp, StageRegenerate)
		assert.Equal(t, int64(11), regen.RowsAffected)
	})

	t.Run("failed stage does not interrupt the rest", func(t *testing.T) {
		slots := &fakeSlotRepo{deleteBeforeErr: errors.New("connection reset")}
		sessions := &fakeSessionRepo{}
		avail := &fakeAvailability{intervals: map[string][]domain.OpenInterval{
			"2026-09-16": allDayOpen,
		}}
		uc := newUC(slots, sessions, avail)

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.True(t, resp.HasErrors())

		deletePast := stageByName(t, resp, StageDeletePast)
		require.NotNil(t, deletePast.Error)
		assert.Contains(t, *deletePast.Error, "connection reset")

		// Остальные этапы всё равно выполнились
		assert.Len(t, slots.reclaimedRanges, 1)
		assert.Len(t, slots.inserted, 1)
		assert.Len(t, sessions.cutoffs, 1)
	})

	t.Run("provider error for one day degrades only that day", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		avail := &fakeAvailability{
			intervals: map[string][]domain.OpenInterval{
				"2026-09-16": allDayOpen,
			},
			errDays: map[string]error{
				"2026-09-15": errors.New("upstream timeout"),
			},
		}
		uc := newUC(slots, &fakeSessionRepo{}, avail)

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)

		regen := stageByName(t, resp, StageRegenerate)
		assert.Nil(t, regen.Error)
		require.Len(t, regen.Details, 1)
		assert.Contains(t, regen.Details[0], "2026-09-15")
		assert.Equal(t, int64(8), regen.RowsAffected)
		assert.True(t, resp.HasErrors())
	})

	t.Run("closed days generate nothing", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		uc := newUC(slots, &fakeSessionRepo{}, &fakeAvailability{})

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Empty(t, slots.inserted)

		regen := stageByName(t, resp, StageRegenerate)
		assert.Zero(t, regen.RowsAffected)
		assert.False(t, resp.HasErrors())
	})
}
