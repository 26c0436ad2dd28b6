package book_instant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
)

type fakeSlotRepo struct {
	window []*domain.Slot

	claimErr   error
	claimedIDs []int64
}

func (f *fakeSlotRepo) GetByTimeRange(_ context.Context, _, _ time.Time) ([]*domain.Slot, error) {
	return f.window, nil
}

func (f *fakeSlotRepo) ClaimFree(_ context.Context, slotIDs []int64) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimedIDs = slotIDs
	return nil
}

type fakeSessionRepo struct {
	created    *domain.Session
	docEnsured []int64
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	out := *s
	out.ID = 17
	f.created = &out
	return &out, nil
}

func (f *fakeSessionRepo) EnsureSessionDoc(_ context.Context, sessionID, _ int64) error {
	f.docEnsured = append(f.docEnsured, sessionID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func freeWindow(start time.Time, stepMinutes, count int) []*domain.Slot {
	slots := make([]*domain.Slot, 0, count)
	for i := 0; i < count; i++ {
		slots = append(slots, &domain.Slot{
			ID:              int64(i + 1),
			StartTime:       start.Add(time.Duration(i*stepMinutes) * time.Minute),
			DurationMinutes: stepMinutes,
			Status:          domain.SlotFree,
		})
	}
	return slots
}

func TestBookInstant_Execute(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	newUC := func(slots *fakeSlotRepo, sessions *fakeSessionRepo, cfg Config) *UseCase {
		uc := NewUseCase(slots, sessions, fakeTxManager{}, cfg, nopLogger{})
		uc.timeProvider = &fixedTime{now: now}
		return uc
	}

	t.Run("claims a free block and creates a paid session", func(t *testing.T) {
		slots := &fakeSlotRepo{window: freeWindow(start, 15, 4)}
		sessions := &fakeSessionRepo{}
		uc := newUC(slots, sessions, Config{})

		resp, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(17), resp.SessionID)
		assert.Equal(t, []int64{1, 2, 3, 4}, resp.SlotIDs)
		assert.Equal(t, string(domain.SessionPaid), resp.Status)

		assert.Equal(t, []int64{1, 2, 3, 4}, slots.claimedIDs)
		assert.Equal(t, []int64{17}, sessions.docEnsured)
		assert.Equal(t, domain.SessionPaid, sessions.created.Status)
	})

	t.Run("held slot blocks instant booking even with an expired hold", func(t *testing.T) {
		// Истекший hold возвращается в оборот только через sweep
		key := "stale-checkout"
		expired := now.Add(-time.Minute)
		window := freeWindow(start, 15, 4)
		window[1].Status = domain.SlotHeld
		window[1].HoldKey = &key
		window[1].HoldUntil = &expired

		uc := newUC(&fakeSlotRepo{window: window}, &fakeSessionRepo{}, Config{})

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("losing the claim race maps to slot unavailable", func(t *testing.T) {
		slots := &fakeSlotRepo{
			window:   freeWindow(start, 15, 4),
			claimErr: slotRepo.ErrClaimConflict,
		}
		uc := newUC(slots, &fakeSessionRepo{}, Config{})

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("buffer minutes are added to the claimed block", func(t *testing.T) {
		slots := &fakeSlotRepo{window: freeWindow(start, 15, 5)}
		sessions := &fakeSessionRepo{}
		uc := newUC(slots, sessions, Config{BufferMinutes: 15})

		resp, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		require.NoError(t, err)
		assert.Len(t, resp.SlotIDs, 5)
		assert.Equal(t, 60, resp.ScheduledMinutes)
	})

	t.Run("start in the past is rejected", func(t *testing.T) {
		uc := newUC(&fakeSlotRepo{}, &fakeSessionRepo{}, Config{})

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            now.Add(-time.Hour),
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrStartInPast)
	})
}
