package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIDsCSV(t *testing.T) {
	t.Run("round trip preserves order", func(t *testing.T) {
		ids := []int64{4, 2, 9}

		decoded, err := DecodeSlotIDs(EncodeSlotIDs(ids))

		require.NoError(t, err)
		assert.Equal(t, ids, decoded)
	})

	t.Run("empty string decodes to empty block", func(t *testing.T) {
		decoded, err := DecodeSlotIDs("")

		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("garbage in the block is an error", func(t *testing.T) {
		_, err := DecodeSlotIDs("1,x,3")

		assert.Error(t, err)
	})
}

func TestSessionTransitions(t *testing.T) {
	t.Run("only unpaid sessions can be paid", func(t *testing.T) {
		assert.True(t, (&Session{Status: SessionUnpaid}).CanBePaid())
		assert.False(t, (&Session{Status: SessionPaid}).CanBePaid())
		assert.False(t, (&Session{Status: SessionCancelled}).CanBePaid())
	})
}

func TestSlotAvailability(t *testing.T) {
	key := "checkout"

	t.Run("free slot is available to anyone", func(t *testing.T) {
		slot := &Slot{Status: SlotFree}

		assert.True(t, slot.AvailableFor(""))
		assert.True(t, slot.AvailableFor(key))
	})

	t.Run("held slot is available only under the same key", func(t *testing.T) {
		slot := &Slot{Status: SlotHeld, HoldKey: &key}

		assert.True(t, slot.AvailableFor(key))
		assert.False(t, slot.AvailableFor("other"))
		assert.False(t, slot.AvailableFor(""))
	})

	t.Run("taken slot is never available", func(t *testing.T) {
		slot := &Slot{Status: SlotTaken}

		assert.False(t, slot.AvailableFor(key))
	})
}
