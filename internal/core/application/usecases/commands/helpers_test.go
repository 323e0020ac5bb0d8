package commands_test

import (
	"encoding/json"
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/require"
)

func mustDispatcher(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.NewDispatcher(kernel.NewUUID())
	require.NoError(t, err)
	return a
}

func mustTechnician(t *testing.T, id kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewTechnician(id)
	require.NoError(t, err)
	return a
}

func newPendingOrder(t *testing.T, assigneeID *kernel.UUID) *workorder.WorkOrder {
	t.Helper()
	order, err := workorder.NewWorkOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Dana Reeves", "12 Harbor Lane", assigneeID, time.Now(),
	)
	require.NoError(t, err)
	return order
}

func newInProgressOrder(t *testing.T, technicianID kernel.UUID) *workorder.WorkOrder {
	t.Helper()
	order := newPendingOrder(t, nil)
	require.NoError(t, order.Claim(technicianID))
	return order
}

func completeOrderForTest(t *testing.T, order *workorder.WorkOrder) {
	t.Helper()
	require.NoError(t, order.Complete(template.Record{}, time.Now()))
}

func newReportTemplate(t *testing.T, id kernel.UUID) *template.ServiceTemplate {
	t.Helper()
	schema, err := template.ParseSchema(json.RawMessage(`{
		"type": "object",
		"properties": {
			"photo": {"type": "string"},
			"notes": {"type": "string"}
		},
		"required": ["photo", "notes"]
	}`))
	require.NoError(t, err)

	tmpl, err := template.NewServiceTemplate(id, "Fiber Installation", "", schema, nil, time.Now())
	require.NoError(t, err)
	return tmpl
}
