package confirm_payment

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
	claimErr   error
	claimedIDs []int64
	claimedKey string
}

func (f *fakeSlotRepo) ClaimHeld(_ context.Context, slotIDs []int64, holdKey string, _ time.Time) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimedIDs = slotIDs
	f.claimedKey = holdKey
	return nil
}

type fakeSessionRepo struct {
	session *domain.Session

	markPaidErr error
	markedPaid  []int64
	docEnsured  []int64
}

func (f *fakeSessionRepo) GetByPaymentRef(_ context.Context, _ string) (*domain.Session, error) {
	if f.session == nil {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) MarkPaid(_ context.Context, id int64) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.markedPaid = append(f.markedPaid, id)
	return nil
}

func (f *fakeSessionRepo) EnsureSessionDoc(_ context.Context, sessionID, _ int64) error {
	f.docEnsured = append(f.docEnsured, sessionID)
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func unpaidSession() *domain.Session {
	return &domain.Session{
		ID:             11,
		SlotID:         1,
		SlotIDs:        []int64{1, 2, 3, 4},
		Status:         domain.SessionUnpaid,
		ScheduledStart: time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC),
		HoldKey:        ptr.Ptr("checkout-key"),
		PaymentRef:     ptr.Ptr("pay-ref-11"),
		StudentID:      7,
	}
}

func TestConfirmPayment_Execute(t *testing.T) {
	t.Run("marks the session paid and claims the held block", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		sessions := &fakeSessionRepo{session: unpaidSession()}
		tx := &fakeTxManager{}
		uc := NewUseCase(slots, sessions, tx, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.SessionID)
		assert.Equal(t, []int64{1, 2, 3, 4}, resp.SlotIDs)
		assert.False(t, resp.AlreadyPaid)

		assert.Equal(t, 1, tx.calls)
		assert.Equal(t, []int64{11}, sessions.markedPaid)
		assert.Equal(t, []int64{1, 2, 3, 4}, slots.claimedIDs)
		assert.Equal(t, "checkout-key", slots.claimedKey)
		assert.Equal(t, []int64{11}, sessions.docEnsured)
	})

	t.Run("replay for a paid session is a pure read", func(t *testing.T) {
		paid := unpaidSession()
		paid.Status = domain.SessionPaid

		slots := &fakeSlotRepo{}
		sessions := &fakeSessionRepo{session: paid}
		tx := &fakeTxManager{}
		uc := NewUseCase(slots, sessions, tx, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		require.NoError(t, err)
		assert.True(t, resp.AlreadyPaid)
		assert.Zero(t, tx.calls)
		assert.Empty(t, sessions.markedPaid)
		assert.Empty(t, slots.claimedIDs)
	})

	t.Run("concurrent callback winning the mark is treated as success", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		sessions := &fakeSessionRepo{
			session:     unpaidSession(),
			markPaidErr: sessionRepo.ErrAlreadyPaid,
		}
		uc := NewUseCase(slots, sessions, &fakeTxManager{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		require.NoError(t, err)
		assert.True(t, resp.AlreadyPaid)
		assert.Empty(t, slots.claimedIDs)
	})

	t.Run("expired hold maps to slot unavailable", func(t *testing.T) {
		slots := &fakeSlotRepo{claimErr: slotRepo.ErrClaimConflict}
		sessions := &fakeSessionRepo{session: unpaidSession()}
		uc := NewUseCase(slots, sessions, &fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("cancelled session cannot be paid", func(t *testing.T) {
		cancelled := unpaidSession()
		cancelled.Status = domain.SessionCancelled

		uc := NewUseCase(&fakeSlotRepo{}, &fakeSessionRepo{session: cancelled}, &fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		assert.ErrorIs(t, err, ErrSessionNotPayable)
	})

	t.Run("unknown payment reference", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeSessionRepo{}, &fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{PaymentRef: "missing"})

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("session without a hold key is a protocol violation", func(t *testing.T) {
		broken := unpaidSession()
		broken.HoldKey = nil

		uc := NewUseCase(&fakeSlotRepo{}, &fakeSessionRepo{session: broken}, &fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{PaymentRef: "pay-ref-11"})

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("empty payment reference is rejected", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeSessionRepo{}, &fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
