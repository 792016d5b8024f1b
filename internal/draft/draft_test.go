package draft

import (
	"strings"
	"testing"

	"uadmin/internal/domain"
	"uadmin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Defaults(t *testing.T) {
	b := New(validation.CreateRules)
	assert.Equal(t, domain.Task{Status: domain.StatusPending}, b.Task())
}

func TestBuilder_LiveMessages(t *testing.T) {
	b := New(validation.CreateRules)

	assert.Equal(t, "El título de la tarea es obligatorio.", b.SetTitle(" "))
	assert.Equal(t, "", b.SetTitle("Comprar"))
	assert.Equal(t, "La descripción no puede tener más de 100 caracteres.", b.SetDescription(strings.Repeat("x", 101)))
	assert.Equal(t, "", b.SetDescription("leche"))

	edit := New(validation.EditRules)
	assert.Equal(t, "", edit.SetTitle(""))
	assert.Equal(t, "El título no puede exceder 50 caracteres", edit.SetTitle(strings.Repeat("x", 51)))
}

func TestBuilder_AppendTo(t *testing.T) {
	b := New(validation.CreateRules)
	b.SetTitle("Comprar")
	b.SetDescription("leche")
	b.SetStatus(domain.StatusInProgress)

	existing := []domain.Task{{Title: "previa", Description: "x"}}
	tasks, err := b.AppendTo(existing)
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, domain.Task{Title: "Comprar", Description: "leche", Status: domain.StatusInProgress}, tasks[1])
	assert.Len(t, existing, 1, "the input collection is not modified")
	assert.Equal(t, domain.Task{Status: domain.StatusPending}, b.Task(), "the draft resets after a successful append")
}

func TestBuilder_AppendToInvalidLeavesDraft(t *testing.T) {
	b := New(validation.CreateRules)
	b.SetTitle("")
	b.SetDescription("algo")
	b.SetStatus(domain.StatusCompleted)

	existing := []domain.Task{{Title: "previa"}}
	tasks, err := b.AppendTo(existing)
	require.Error(t, err)

	ve, ok := err.(*validation.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "El título de la tarea es obligatorio.", ve.Message(validation.FieldTitle))
	assert.Equal(t, existing, tasks)
	assert.Equal(t, domain.Task{Description: "algo", Status: domain.StatusCompleted}, b.Task())
}

func TestBuilder_CheckAndReset(t *testing.T) {
	b := New(validation.EditRules)
	require.NoError(t, b.Check(), "edit rules allow a blank draft")

	b.SetTitle(strings.Repeat("t", 51))
	assert.Error(t, b.Check())

	b.Reset()
	assert.NoError(t, b.Check())
	assert.Equal(t, domain.StatusPending, b.Task().Status)
}
