package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportTemplate(t *testing.T) *template.ServiceTemplate {
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

	tmpl, err := template.NewServiceTemplate(
		kernel.NewUUID(), "Fiber Installation", "", schema, nil, time.Now(),
	)
	require.NoError(t, err)
	return tmpl
}

func TestFormBinding_BindProgress(t *testing.T) {
	binding := services.NewFormBinding(services.NewAccessPolicy())
	tmpl := newReportTemplate(t)
	technicianID := kernel.NewUUID()
	technician := mustTechnician(t, technicianID)

	t.Run("should accept a partial record from the working technician", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)

		err := binding.BindProgress(technician, order, tmpl, template.Record{"notes": "halfway"})

		require.NoError(t, err)
	})

	t.Run("should refuse a dispatcher", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)

		err := binding.BindProgress(mustDispatcher(t), order, tmpl, template.Record{"notes": "halfway"})

		require.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("should refuse another technician", func(t *testing.T) {
		order := newInProgressOrder(t, kernel.NewUUID())

		err := binding.BindProgress(technician, order, tmpl, template.Record{"notes": "halfway"})

		require.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("should still reject type mismatches", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)

		err := binding.BindProgress(technician, order, tmpl, template.Record{"notes": 7})

		require.ErrorIs(t, err, template.ErrSchemaValidation)
	})

	t.Run("should fail for unconstructed template", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)
		var zero template.ServiceTemplate

		err := binding.BindProgress(technician, order, &zero, template.Record{})

		require.ErrorIs(t, err, template.ErrTemplateIsNotConstructed)
	})
}

func TestFormBinding_BindCompletion(t *testing.T) {
	binding := services.NewFormBinding(services.NewAccessPolicy())
	tmpl := newReportTemplate(t)
	technicianID := kernel.NewUUID()
	technician := mustTechnician(t, technicianID)

	t.Run("should accept a complete record from the working technician", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)
		data := template.Record{"photo": "https://blobs.example/abc", "notes": "done"}

		err := binding.BindCompletion(technician, order, tmpl, data)

		require.NoError(t, err)
	})

	t.Run("should enforce required fields", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)

		err := binding.BindCompletion(technician, order, tmpl, template.Record{"notes": "done"})

		require.ErrorIs(t, err, template.ErrSchemaValidation)
		var schemaErr *template.SchemaValidationError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, []string{"photo"}, schemaErr.FieldPaths)
	})

	t.Run("authorization runs before schema validation", func(t *testing.T) {
		order := newInProgressOrder(t, technicianID)

		err := binding.BindCompletion(mustDispatcher(t), order, tmpl, template.Record{})

		require.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("should refuse completion of a pending order", func(t *testing.T) {
		order := newPendingOrder(t, &technicianID)
		data := template.Record{"photo": "https://blobs.example/abc", "notes": "done"}

		err := binding.BindCompletion(technician, order, tmpl, data)

		require.ErrorIs(t, err, services.ErrForbidden)
	})
}
