package hold_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

type fakeSlotRepo struct {
	window []*domain.Slot

	holdErr     error
	heldIDs     []int64
	heldKey     string
	heldUntil   time.Time
	fetchedFrom time.Time
	fetchedTo   time.Time
}

func (f *fakeSlotRepo) GetByTimeRange(_ context.Context, from, to time.Time) ([]*domain.Slot, error) {
	f.fetchedFrom = from
	f.fetchedTo = to
	return f.window, nil
}

func (f *fakeSlotRepo) AcquireOrExtendHold(_ context.Context, slotIDs []int64, holdKey string, until time.Time) error {
	if f.holdErr != nil {
		return f.holdErr
	}
	f.heldIDs = slotIDs
	f.heldKey = holdKey
	f.heldUntil = until
	return nil
}

type fakeSessionRepo struct {
	existing *domain.Session
	created  *domain.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	out := *s
	out.ID = 42
	f.created = &out
	return &out, nil
}

func (f *fakeSessionRepo) GetByHoldKey(_ context.Context, _ string) (*domain.Session, error) {
	if f.existing == nil {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return f.existing, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
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

func newTestUseCase(slots *fakeSlotRepo, sessions *fakeSessionRepo, tx *fakeTxManager, cfg Config, now time.Time) *UseCase {
	uc := NewUseCase(slots, sessions, tx, cfg, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestHoldSlots_Execute(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	cfg := Config{HoldTTL: 10 * time.Minute}

	t.Run("holds a free block and creates an unpaid session", func(t *testing.T) {
		slots := &fakeSlotRepo{window: freeWindow(start, 15, 4)}
		sessions := &fakeSessionRepo{}
		tx := &fakeTxManager{}
		uc := newTestUseCase(slots, sessions, tx, cfg, now)

		resp, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.HoldKey)
		assert.NotEmpty(t, resp.PaymentRef)
		assert.Equal(t, now.Add(10*time.Minute), resp.HoldUntil)
		assert.Equal(t, []int64{1, 2, 3, 4}, resp.SlotIDs)
		assert.Equal(t, int64(42), resp.SessionID)

		assert.Equal(t, 1, tx.calls)
		assert.Equal(t, []int64{1, 2, 3, 4}, slots.heldIDs)
		assert.Equal(t, resp.HoldKey, slots.heldKey)

		require.NotNil(t, sessions.created)
		assert.Equal(t, domain.SessionUnpaid, sessions.created.Status)
		assert.Equal(t, 60, sessions.created.ScheduledMinutes)
		assert.Equal(t, int64(1), sessions.created.SlotID)
	})

	t.Run("buffer minutes widen the held block but not the session", func(t *testing.T) {
		bufCfg := Config{HoldTTL: 10 * time.Minute, BufferMinutes: 15}
		slots := &fakeSlotRepo{window: freeWindow(start, 15, 5)}
		sessions := &fakeSessionRepo{}
		uc := newTestUseCase(slots, sessions, &fakeTxManager{}, bufCfg, now)

		resp, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		require.NoError(t, err)
		assert.Len(t, resp.SlotIDs, 5)
		assert.Equal(t, start.Add(75*time.Minute), slots.fetchedTo)
		assert.Equal(t, 60, sessions.created.ScheduledMinutes)
	})

	t.Run("re-acquire with the same key extends the hold and reuses the session", func(t *testing.T) {
		key := "existing-checkout"
		window := freeWindow(start, 15, 4)
		until := now.Add(5 * time.Minute)
		for _, s := range window {
			s.Status = domain.SlotHeld
			s.HoldKey = &key
			s.HoldUntil = &until
		}

		slots := &fakeSlotRepo{window: window}
		sessions := &fakeSessionRepo{existing: &domain.Session{
			ID:         99,
			Status:     domain.SessionUnpaid,
			PaymentRef: ptr.Ptr("pay-ref-99"),
		}}
		uc := newTestUseCase(slots, sessions, &fakeTxManager{}, cfg, now)

		resp, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
			HoldKey:          &key,
		})

		require.NoError(t, err)
		assert.Equal(t, key, resp.HoldKey)
		assert.Equal(t, int64(99), resp.SessionID)
		assert.Equal(t, "pay-ref-99", resp.PaymentRef)
		assert.Equal(t, now.Add(10*time.Minute), slots.heldUntil)
		assert.Nil(t, sessions.created)
	})

	t.Run("losing the stamping race maps to slot unavailable", func(t *testing.T) {
		slots := &fakeSlotRepo{
			window:  freeWindow(start, 15, 4),
			holdErr: slotRepo.ErrHoldLost,
		}
		uc := newTestUseCase(slots, &fakeSessionRepo{}, &fakeTxManager{}, cfg, now)

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("block held by another checkout maps to slot unavailable", func(t *testing.T) {
		other := "other-checkout"
		window := freeWindow(start, 15, 4)
		window[2].Status = domain.SlotHeld
		window[2].HoldKey = &other

		slots := &fakeSlotRepo{window: window}
		uc := newTestUseCase(slots, &fakeSessionRepo{}, &fakeTxManager{}, cfg, now)

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Empty(t, slots.heldIDs)
	})

	t.Run("gap in the window maps to window missing slots", func(t *testing.T) {
		window := freeWindow(start, 15, 3)
		slots := &fakeSlotRepo{window: window}
		uc := newTestUseCase(slots, &fakeSessionRepo{}, &fakeTxManager{}, cfg, now)

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            start,
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrWindowMissingSlots)
	})

	t.Run("start in the past is rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeSlotRepo{}, &fakeSessionRepo{}, &fakeTxManager{}, cfg, now)

		_, err := uc.Execute(context.Background(), &Request{
			StudentID:        7,
			Start:            now.Add(-time.Hour),
			ScheduledMinutes: 60,
		})

		assert.ErrorIs(t, err, ErrStartInPast)
	})

	t.Run("validation failures", func(t *testing.T) {
		uc := newTestUseCase(&fakeSlotRepo{}, &fakeSessionRepo{}, &fakeTxManager{}, cfg, now)

		tests := []struct {
			name string
			req  *Request
		}{
			{"non-positive student", &Request{StudentID: 0, Start: start, ScheduledMinutes: 60}},
			{"zero start", &Request{StudentID: 7, ScheduledMinutes: 60}},
			{"duration below minimum", &Request{StudentID: 7, Start: start, ScheduledMinutes: 5}},
			{"duration above maximum", &Request{StudentID: 7, Start: start, ScheduledMinutes: 600}},
			{"empty hold key", &Request{StudentID: 7, Start: start, ScheduledMinutes: 60, HoldKey: ptr.Ptr("")}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}
