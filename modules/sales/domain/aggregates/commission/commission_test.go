package commission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func pendingLine() Commission {
	return New(uuid.New(), uuid.New(), TypeSetter, decimal.NewFromInt(2500), CalcDetails{})
}

func TestCommission_HappyPathLifecycle(t *testing.T) {
	c := pendingLine()
	require.Equal(t, StatusPending, c.Status())

	approved, err := c.Approve()
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status())
	require.True(t, approved.IsSettled())

	paid, err := approved.MarkPaid()
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status())
}

func TestCommission_HoldAndRelease(t *testing.T) {
	c := pendingLine()

	held, err := c.Hold("clawback dispute")
	require.NoError(t, err)
	require.Equal(t, StatusHeld, held.Status())
	require.Equal(t, "clawback dispute", *held.StatusReason())

	released, err := held.Release()
	require.NoError(t, err)
	require.Equal(t, StatusPending, released.Status())
	require.Nil(t, released.StatusReason())

	// A held line may also go straight to approved.
	held2, err := pendingLine().Hold("check")
	require.NoError(t, err)
	approved, err := held2.Approve()
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status())
	require.Nil(t, approved.StatusReason())
}

func TestCommission_InvalidTransitions(t *testing.T) {
	c := pendingLine()

	_, err := c.MarkPaid()
	require.ErrorIs(t, err, ErrInvalidTransition)

	approved, err := c.Approve()
	require.NoError(t, err)

	_, err = approved.Void("too late")
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = approved.Hold("too late")
	require.ErrorIs(t, err, ErrInvalidTransition)

	paid, err := approved.MarkPaid()
	require.NoError(t, err)
	_, err = paid.Approve()
	require.ErrorIs(t, err, ErrInvalidTransition)

	voided, err := pendingLine().Void("duplicate deal")
	require.NoError(t, err)
	_, err = voided.Approve()
	require.ErrorIs(t, err, ErrInvalidTransition)
}
