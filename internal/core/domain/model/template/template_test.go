package template_test

import (
	"encoding/json"
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceTemplate(t *testing.T) {
	schema := mustParseSchema(t, installationSchemaDoc)
	hints := json.RawMessage(`{"photo": {"ui:widget": "file"}}`)
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should create template with valid params", func(t *testing.T) {
		id := kernel.NewUUID()

		tmpl, err := template.NewServiceTemplate(id, "Fiber Installation", "New fiber hookup", schema, hints, createdAt)

		require.NoError(t, err)
		require.NoError(t, tmpl.Validate())
		assert.True(t, tmpl.ID().IsEqual(id))
		assert.Equal(t, "Fiber Installation", tmpl.Name())
		assert.Equal(t, "New fiber hookup", tmpl.Description())
		assert.Equal(t, schema.Required, tmpl.Schema().Required)
		assert.Equal(t, hints, tmpl.PresentationHints())
		assert.Equal(t, createdAt, tmpl.CreatedAt())
	})

	t.Run("should allow empty description and nil hints", func(t *testing.T) {
		tmpl, err := template.NewServiceTemplate(kernel.NewUUID(), "Repair", "", schema, nil, createdAt)

		require.NoError(t, err)
		assert.Empty(t, tmpl.Description())
		assert.Nil(t, tmpl.PresentationHints())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := template.NewServiceTemplate(kernel.NewUUID(), "", "", schema, nil, createdAt)

		require.Error(t, err)
		require.ErrorIs(t, err, template.ErrNameIsRequired)
	})

	t.Run("should fail with zero id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := template.NewServiceTemplate(invalidID, "Repair", "", schema, nil, createdAt)

		require.Error(t, err)
	})

	t.Run("should fail with empty schema", func(t *testing.T) {
		_, err := template.NewServiceTemplate(kernel.NewUUID(), "Repair", "", template.Schema{}, nil, createdAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with zero createdAt", func(t *testing.T) {
		_, err := template.NewServiceTemplate(kernel.NewUUID(), "Repair", "", schema, nil, time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestServiceTemplate_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var tmpl template.ServiceTemplate

		require.ErrorIs(t, tmpl.Validate(), template.ErrTemplateIsNotConstructed)
	})

	t.Run("nil pointer fails validation", func(t *testing.T) {
		var tmpl *template.ServiceTemplate

		require.ErrorIs(t, tmpl.Validate(), template.ErrTemplateIsNotConstructed)
	})
}

func TestServiceTemplate_IsEqual(t *testing.T) {
	schema := mustParseSchema(t, installationSchemaDoc)
	createdAt := time.Now()
	id := kernel.NewUUID()

	first, err := template.NewServiceTemplate(id, "Repair", "", schema, nil, createdAt)
	require.NoError(t, err)
	second, err := template.NewServiceTemplate(id, "Other name", "", schema, nil, createdAt)
	require.NoError(t, err)
	third, err := template.NewServiceTemplate(kernel.NewUUID(), "Repair", "", schema, nil, createdAt)
	require.NoError(t, err)

	assert.True(t, first.IsEqual(second))
	assert.False(t, first.IsEqual(third))
	assert.False(t, first.IsEqual(nil))
}
