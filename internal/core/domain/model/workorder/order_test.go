package workorder_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()
	order, err := workorder.NewWorkOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Dana Reeves",
		"12 Harbor Lane",
		nil,
		time.Now(),
	)
	require.NoError(t, err)
	return order
}

func newClaimedOrder(t *testing.T, technicianID kernel.UUID) *workorder.WorkOrder {
	t.Helper()
	order := newPendingOrder(t)
	require.NoError(t, order.Claim(technicianID))
	return order
}

func TestNewWorkOrder(t *testing.T) {
	t.Run("should create pending order with valid params", func(t *testing.T) {
		id := kernel.NewUUID()
		templateID := kernel.NewUUID()
		createdAt := time.Now()

		order, err := workorder.NewWorkOrder(id, templateID, "Dana Reeves", "12 Harbor Lane", nil, createdAt)

		require.NoError(t, err)
		require.NoError(t, order.Validate())
		assert.True(t, order.ID().IsEqual(id))
		assert.True(t, order.TemplateID().IsEqual(templateID))
		assert.Equal(t, workorder.Pending, order.Status())
		assert.Nil(t, order.Assignee())
		assert.Nil(t, order.CapturedData())
		assert.Nil(t, order.CompletedAt())
		assert.Equal(t, createdAt, order.CreatedAt())
	})

	t.Run("should accept a pre-assigned technician", func(t *testing.T) {
		technicianID := kernel.NewUUID()

		order, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Dana Reeves", "12 Harbor Lane", &technicianID, time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, workorder.Pending, order.Status())
		require.NotNil(t, order.Assignee())
		assert.True(t, order.Assignee().IsEqual(technicianID))
	})

	t.Run("should fail with invalid ids", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := workorder.NewWorkOrder(invalidID, kernel.NewUUID(), "Dana", "12 Harbor Lane", nil, time.Now())
		require.Error(t, err)

		_, err = workorder.NewWorkOrder(kernel.NewUUID(), invalidID, "Dana", "12 Harbor Lane", nil, time.Now())
		require.Error(t, err)
	})

	t.Run("should fail with empty customer fields", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), "", "12 Harbor Lane", nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), "Dana", "", nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with zero createdAt", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), "Dana", "12 Harbor Lane", nil, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var order workorder.WorkOrder

		require.ErrorIs(t, order.Validate(), workorder.ErrOrderIsNotConstructed)
	})
}

func TestWorkOrder_Claim(t *testing.T) {
	t.Run("should self-assign when unassigned", func(t *testing.T) {
		order := newPendingOrder(t)
		technicianID := kernel.NewUUID()

		err := order.Claim(technicianID)

		require.NoError(t, err)
		assert.Equal(t, workorder.InProgress, order.Status())
		require.NotNil(t, order.Assignee())
		assert.True(t, order.Assignee().IsEqual(technicianID))
	})

	t.Run("should allow the pre-assigned technician to claim", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		order, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Dana", "12 Harbor Lane", &technicianID, time.Now(),
		)
		require.NoError(t, err)

		require.NoError(t, order.Claim(technicianID))
		assert.Equal(t, workorder.InProgress, order.Status())
	})

	t.Run("should reject a claim on somebody else's order", func(t *testing.T) {
		assignee := kernel.NewUUID()
		order, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Dana", "12 Harbor Lane", &assignee, time.Now(),
		)
		require.NoError(t, err)

		err = order.Claim(kernel.NewUUID())

		require.ErrorIs(t, err, workorder.ErrAssignedToAnotherTechnician)
		assert.Equal(t, workorder.Pending, order.Status())
	})

	t.Run("should reject a second claim", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		order := newClaimedOrder(t, technicianID)

		err := order.Claim(technicianID)

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should reject invalid technician id", func(t *testing.T) {
		order := newPendingOrder(t)
		var invalidID kernel.UUID

		require.Error(t, order.Claim(invalidID))
	})
}

func TestWorkOrder_SaveProgress(t *testing.T) {
	t.Run("should store data while in progress", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		data := template.Record{"notes": "halfway"}

		err := order.SaveProgress(data)

		require.NoError(t, err)
		assert.Equal(t, data, order.CapturedData())
		assert.Equal(t, workorder.InProgress, order.Status())
		assert.Nil(t, order.CompletedAt())
	})

	t.Run("should replace earlier progress wholesale", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.SaveProgress(template.Record{"notes": "first", "photo": "a"}))

		require.NoError(t, order.SaveProgress(template.Record{"notes": "second"}))

		assert.Equal(t, template.Record{"notes": "second"}, order.CapturedData())
	})

	t.Run("should reject progress on pending order", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.SaveProgress(template.Record{"notes": "too early"})

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should reject progress on completed order", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.Complete(template.Record{"notes": "done"}, time.Now()))

		err := order.SaveProgress(template.Record{"notes": "too late"})

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})
}

func TestWorkOrder_Complete(t *testing.T) {
	t.Run("should set status, data and timestamp together", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		data := template.Record{"notes": "replaced splitter", "photo": "https://blobs.example/abc"}
		completedAt := time.Now()

		err := order.Complete(data, completedAt)

		require.NoError(t, err)
		assert.Equal(t, workorder.Completed, order.Status())
		assert.Equal(t, data, order.CapturedData())
		require.NotNil(t, order.CompletedAt())
		assert.Equal(t, completedAt, *order.CompletedAt())
	})

	t.Run("should replace saved progress with the final document", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.SaveProgress(template.Record{"notes": "draft", "scratch": "x"}))

		require.NoError(t, order.Complete(template.Record{"notes": "final"}, time.Now()))

		assert.Equal(t, template.Record{"notes": "final"}, order.CapturedData())
	})

	t.Run("should reject completion of pending order", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.Complete(template.Record{"notes": "done"}, time.Now())

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
		assert.Nil(t, order.CompletedAt())
	})

	t.Run("should reject second completion", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.Complete(template.Record{"notes": "done"}, time.Now()))

		err := order.Complete(template.Record{"notes": "again"}, time.Now())

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should reject zero timestamp", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())

		err := order.Complete(template.Record{"notes": "done"}, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestWorkOrder_Reassign(t *testing.T) {
	t.Run("should assign a technician to a pending order", func(t *testing.T) {
		order := newPendingOrder(t)
		technicianID := kernel.NewUUID()

		require.NoError(t, order.Reassign(&technicianID))

		require.NotNil(t, order.Assignee())
		assert.True(t, order.Assignee().IsEqual(technicianID))
		assert.Equal(t, workorder.Pending, order.Status())
	})

	t.Run("should swap the technician on an in-progress order", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		replacement := kernel.NewUUID()

		require.NoError(t, order.Reassign(&replacement))

		assert.True(t, order.Assignee().IsEqual(replacement))
	})

	t.Run("should clear a pre-assignment on a pending order", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		order := newPendingOrder(t)
		require.NoError(t, order.Reassign(&technicianID))

		require.NoError(t, order.Reassign(nil))

		assert.Nil(t, order.Assignee())
	})

	t.Run("should not leave an in-progress order unassigned", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())

		err := order.Reassign(nil)

		require.ErrorIs(t, err, workorder.ErrAssigneeIsRequired)
		assert.NotNil(t, order.Assignee())
	})

	t.Run("should reject reassignment of completed order", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.Complete(template.Record{}, time.Now()))
		replacement := kernel.NewUUID()

		err := order.Reassign(&replacement)

		require.ErrorIs(t, err, workorder.ErrCompletedOrderIsImmutable)
	})
}

func TestWorkOrder_ForceStatus(t *testing.T) {
	t.Run("should force an assigned pending order into in_progress", func(t *testing.T) {
		order := newPendingOrder(t)
		technicianID := kernel.NewUUID()
		require.NoError(t, order.Reassign(&technicianID))

		require.NoError(t, order.ForceStatus(workorder.InProgress))

		assert.Equal(t, workorder.InProgress, order.Status())
	})

	t.Run("should refuse forcing an unassigned order into in_progress", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.ForceStatus(workorder.InProgress)

		require.ErrorIs(t, err, workorder.ErrAssigneeIsRequired)
		assert.Equal(t, workorder.Pending, order.Status())
	})

	t.Run("should force an in-progress order back to pending keeping the assignee", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		order := newClaimedOrder(t, technicianID)

		require.NoError(t, order.ForceStatus(workorder.Pending))

		assert.Equal(t, workorder.Pending, order.Status())
		assert.True(t, order.Assignee().IsEqual(technicianID))
	})

	t.Run("should never force into completed", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())

		err := order.ForceStatus(workorder.Completed)

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})

	t.Run("should never force out of completed", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.Complete(template.Record{}, time.Now()))

		err := order.ForceStatus(workorder.Pending)

		require.ErrorIs(t, err, workorder.ErrInvalidTransition)
	})
}

func TestWorkOrder_EnsureDeletable(t *testing.T) {
	t.Run("open orders are deletable", func(t *testing.T) {
		require.NoError(t, newPendingOrder(t).EnsureDeletable())
		require.NoError(t, newClaimedOrder(t, kernel.NewUUID()).EnsureDeletable())
	})

	t.Run("completed orders are not", func(t *testing.T) {
		order := newClaimedOrder(t, kernel.NewUUID())
		require.NoError(t, order.Complete(template.Record{}, time.Now()))

		require.ErrorIs(t, order.EnsureDeletable(), workorder.ErrCompletedOrderIsImmutable)
	})
}

func TestWorkOrder_IsOwnedBy(t *testing.T) {
	technicianID := kernel.NewUUID()
	order := newClaimedOrder(t, technicianID)

	assert.True(t, order.IsOwnedBy(technicianID))
	assert.False(t, order.IsOwnedBy(kernel.NewUUID()))
	assert.False(t, newPendingOrder(t).IsOwnedBy(technicianID))
}

func TestRestoreWorkOrder(t *testing.T) {
	id := kernel.NewUUID()
	templateID := kernel.NewUUID()
	technicianID := kernel.NewUUID()
	createdAt := time.Now().Add(-time.Hour)

	t.Run("should restore an in-progress order", func(t *testing.T) {
		data := template.Record{"notes": "halfway"}

		order, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", &technicianID,
			workorder.InProgress, data, createdAt, nil,
		)

		require.NoError(t, err)
		require.NoError(t, order.Validate())
		assert.Equal(t, workorder.InProgress, order.Status())
		assert.Equal(t, data, order.CapturedData())
	})

	t.Run("should restore a completed order", func(t *testing.T) {
		completedAt := time.Now()

		order, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", &technicianID,
			workorder.Completed, template.Record{"notes": "done"}, createdAt, &completedAt,
		)

		require.NoError(t, err)
		require.NotNil(t, order.CompletedAt())
	})

	t.Run("should reject in-progress order without assignee", func(t *testing.T) {
		_, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", nil,
			workorder.InProgress, nil, createdAt, nil,
		)

		require.ErrorIs(t, err, workorder.ErrAssigneeIsRequired)
	})

	t.Run("should reject completed order without timestamp", func(t *testing.T) {
		_, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", &technicianID,
			workorder.Completed, nil, createdAt, nil,
		)

		require.Error(t, err)
	})

	t.Run("should reject open order with completion timestamp", func(t *testing.T) {
		completedAt := time.Now()

		_, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", &technicianID,
			workorder.Pending, nil, createdAt, &completedAt,
		)

		require.Error(t, err)
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := workorder.RestoreWorkOrder(
			id, templateID, "Dana", "12 Harbor Lane", &technicianID,
			workorder.Unknown, nil, createdAt, nil,
		)

		require.Error(t, err)
	})
}
