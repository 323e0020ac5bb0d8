package workorder_test

import (
	"testing"

	"fieldservice/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Claim(t *testing.T) {
	t.Run("should transition pending to in_progress", func(t *testing.T) {
		newStatus, err := workorder.Pending.Claim()

		require.NoError(t, err)
		assert.Equal(t, workorder.InProgress, newStatus)
	})

	t.Run("should fail from in_progress", func(t *testing.T) {
		_, err := workorder.InProgress.Claim()

		require.Error(t, err)
		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should fail from completed", func(t *testing.T) {
		_, err := workorder.Completed.Claim()

		require.Error(t, err)
		var transitionErr *workorder.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, workorder.Completed, transitionErr.From)
		assert.Equal(t, workorder.InProgress, transitionErr.To)
	})

	t.Run("should fail from unknown", func(t *testing.T) {
		_, err := workorder.Unknown.Claim()

		require.Error(t, err)
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should transition in_progress to completed", func(t *testing.T) {
		newStatus, err := workorder.InProgress.Complete()

		require.NoError(t, err)
		assert.Equal(t, workorder.Completed, newStatus)
	})

	t.Run("should fail from pending", func(t *testing.T) {
		_, err := workorder.Pending.Complete()

		require.Error(t, err)
		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should fail from completed", func(t *testing.T) {
		_, err := workorder.Completed.Complete()

		require.Error(t, err)
	})
}

func TestStatus_ForceTo(t *testing.T) {
	t.Run("should allow pending to in_progress", func(t *testing.T) {
		newStatus, err := workorder.Pending.ForceTo(workorder.InProgress)

		require.NoError(t, err)
		assert.Equal(t, workorder.InProgress, newStatus)
	})

	t.Run("should allow in_progress back to pending", func(t *testing.T) {
		newStatus, err := workorder.InProgress.ForceTo(workorder.Pending)

		require.NoError(t, err)
		assert.Equal(t, workorder.Pending, newStatus)
	})

	t.Run("should never force into completed", func(t *testing.T) {
		_, err := workorder.InProgress.ForceTo(workorder.Completed)

		require.Error(t, err)
		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should never force out of completed", func(t *testing.T) {
		_, err := workorder.Completed.ForceTo(workorder.Pending)

		require.Error(t, err)
		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should reject forcing to the current status", func(t *testing.T) {
		_, err := workorder.Pending.ForceTo(workorder.Pending)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already pending")
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		_, err := workorder.Pending.ForceTo(workorder.Unknown)

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept valid statuses", func(t *testing.T) {
		require.NoError(t, workorder.Pending.Validate())
		require.NoError(t, workorder.InProgress.Validate())
		require.NoError(t, workorder.Completed.Validate())
	})

	t.Run("should reject unknown and out-of-range", func(t *testing.T) {
		require.Error(t, workorder.Unknown.Validate())
		require.Error(t, workorder.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", workorder.Pending.String())
	assert.Equal(t, "in_progress", workorder.InProgress.String())
	assert.Equal(t, "completed", workorder.Completed.String())
	assert.Equal(t, "unknown", workorder.Unknown.String())
	assert.Equal(t, "unknown", workorder.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip valid statuses", func(t *testing.T) {
		for _, status := range []workorder.Status{workorder.Pending, workorder.InProgress, workorder.Completed} {
			parsed, err := workorder.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		_, err := workorder.StatusFromString("cancelled")

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, workorder.Pending.IsTerminal())
	assert.False(t, workorder.InProgress.IsTerminal())
	assert.True(t, workorder.Completed.IsTerminal())
}
