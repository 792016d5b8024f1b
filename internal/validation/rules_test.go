package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRules_Validate(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		value    string
		expected string
	}{
		{"name ok", FieldName, "Ana", ""},
		{"name blank", FieldName, "   ", "El nombre es obligatorio."},
		{"name empty", FieldName, "", "El nombre es obligatorio."},
		{"name 30 runes", FieldName, strings.Repeat("ñ", 30), ""},
		{"name 31", FieldName, strings.Repeat("a", 31), "El nombre no puede tener más de 30 caracteres."},
		{"email ok", FieldEmail, "ana@example.com", ""},
		{"email bad", FieldEmail, "ana@example", "El email no es válido."},
		{"password ok", FieldPassword, "Secreto12", ""},
		{"password weak", FieldPassword, "secreto12", "La contraseña debe tener al menos 8 caracteres, una letra mayúscula y un número."},
		{"title blank", FieldTitle, "", "El título de la tarea es obligatorio."},
		{"title 31", FieldTitle, strings.Repeat("t", 31), "El título no puede tener más de 30 caracteres."},
		{"title 30", FieldTitle, strings.Repeat("t", 30), ""},
		{"description blank", FieldDescription, " ", "La descripción de la tarea es obligatoria."},
		{"description 101", FieldDescription, strings.Repeat("d", 101), "La descripción no puede tener más de 100 caracteres."},
		{"description 100", FieldDescription, strings.Repeat("d", 100), ""},
		{"unknown field", Field("status"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CreateRules.Validate(tt.field, tt.value))
		})
	}
}

func TestEditRules_Validate(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		value    string
		expected string
	}{
		{"name blank", FieldName, "", "El nombre es obligatorio"},
		{"name 31", FieldName, strings.Repeat("a", 31), "El nombre no puede tener más de 30 caracteres"},
		{"email bad", FieldEmail, "nope", "El email no es válido"},
		{"password not checked", FieldPassword, "x", ""},
		{"title blank allowed", FieldTitle, "", ""},
		{"title 50", FieldTitle, strings.Repeat("t", 50), ""},
		{"title 51", FieldTitle, strings.Repeat("t", 51), "El título no puede exceder 50 caracteres"},
		{"description blank allowed", FieldDescription, "   ", ""},
		{"description 200", FieldDescription, strings.Repeat("d", 200), ""},
		{"description 201", FieldDescription, strings.Repeat("d", 201), "La descripción no puede exceder 200 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EditRules.Validate(tt.field, tt.value))
		})
	}
}

// An address is accepted only with exactly one @, a non-empty local part,
// and a domain that contains a dot with text on both sides.
func TestEmailRule(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"a@b.c", true},
		{"first.last@sub.example.org", true},
		{"a@b.c.d", true},
		{"", false},
		{"a", false},
		{"@b.c", false},
		{"a@", false},
		{"a@b", false},
		{"a@.c", false},
		{"a@b.", false},
		{"a@@b.c", false},
		{"a@b@c.d", false},
		{"a b@c.d", false},
		{"a@b .c", false},
		{" a@b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			msg := CreateRules.Validate(FieldEmail, tt.value)
			assert.Equal(t, tt.valid, msg == "", "email %q", tt.value)
		})
	}
}

func TestPasswordRule(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"Abcdefg1", true},
		{"ABCDEFG1", true},
		{"12345678A", true},
		{"Abcdef1", false},
		{"abcdefg1", false},
		{"Abcdefgh", false},
		{"", false},
		{"Abc def 1", true},
		{"Ñandú-2024x", false},
		{"Ñandú-2024X", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			msg := CreateRules.Validate(FieldPassword, tt.value)
			assert.Equal(t, tt.valid, msg == "", "password %q", tt.value)
		})
	}
}

func TestValidateNewUser(t *testing.T) {
	require.NoError(t, ValidateNewUser("Ana", "ana@example.com", "Secreto12"))

	err := ValidateNewUser("", "bad", "weak")
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 3)
	assert.Equal(t, ErrorTypeRequired, ve.GetFieldErrors(FieldName)[0].Type)
	assert.Equal(t, ErrorTypeInvalidFormat, ve.GetFieldErrors(FieldEmail)[0].Type)
	assert.Equal(t, "El email no es válido.", ve.Message(FieldEmail))
	assert.NotEmpty(t, ve.Message(FieldPassword))
}

func TestValidateUserUpdate(t *testing.T) {
	require.NoError(t, ValidateUserUpdate("Ana", "ana@example.com"))

	err := ValidateUserUpdate("Ana", "ana")
	require.Error(t, err)
	ve := err.(*ValidationError)
	assert.Len(t, ve.Errors, 1)
	assert.Equal(t, FieldEmail, ve.Errors[0].Field)
}

func TestRules_ValidateTask(t *testing.T) {
	assert.NoError(t, CreateRules.ValidateTask("Comprar", "leche"))
	assert.NoError(t, EditRules.ValidateTask("", ""))

	err := CreateRules.ValidateTask("", strings.Repeat("d", 101))
	require.Error(t, err)
	ve := err.(*ValidationError)
	assert.Equal(t, ErrorTypeRequired, ve.Errors[0].Type)
	assert.Equal(t, ErrorTypeInvalidLength, ve.Errors[1].Type)
	assert.Equal(t, FieldDescription, ve.Errors[1].Field)

	assert.Error(t, EditRules.ValidateTask(strings.Repeat("t", 51), ""))
}
