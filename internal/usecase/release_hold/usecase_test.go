package release_hold

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct {
	released int64
	err      error
	keys     []string
}

func (f *fakeSlotRepo) ReleaseHold(_ context.Context, holdKey string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.keys = append(f.keys, holdKey)
	return f.released, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReleaseHold_Execute(t *testing.T) {
	t.Run("releases held slots", func(t *testing.T) {
		repo := &fakeSlotRepo{released: 4}
		uc := NewUseCase(repo, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{HoldKey: "checkout-key"})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ReleasedSlots)
		assert.Equal(t, []string{"checkout-key"}, repo.keys)
	})

	t.Run("unknown key is not an error", func(t *testing.T) {
		repo := &fakeSlotRepo{released: 0}
		uc := NewUseCase(repo, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{HoldKey: "gone"})

		require.NoError(t, err)
		assert.Zero(t, resp.ReleasedSlots)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("storage failure maps to internal error", func(t *testing.T) {
		repo := &fakeSlotRepo{err: errors.New("connection reset")}
		uc := NewUseCase(repo, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{HoldKey: "checkout-key"})

		assert.ErrorIs(t, err, ErrInternal)
	})
}
