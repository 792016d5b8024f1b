package validation

// Field names a validated input.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPassword    Field = "password"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// textRule bounds a free-text field.
type textRule struct {
	required bool
	max      int
	blank    string
	tooLong  string
}

func (tr textRule) check(v *Validator, value string) (ValidationErrorType, string) {
	if tr.required && !v.IsNonEmptyString(value) {
		return ErrorTypeRequired, tr.blank
	}
	if !v.IsWithinLength(value, tr.max) {
		return ErrorTypeInvalidLength, tr.tooLong
	}
	return "", ""
}

// Rules is the rule set of one flow. The create and edit flows deliberately
// use different task limits.
type Rules struct {
	validator   *Validator
	name        textRule
	title       textRule
	description textRule
	email       string
	password    string
}

// CreateRules apply to the add-user flow and its draft tasks.
var CreateRules = &Rules{
	validator: NewValidator(),
	name: textRule{
		required: true,
		max:      30,
		blank:    "El nombre es obligatorio.",
		tooLong:  "El nombre no puede tener más de 30 caracteres.",
	},
	title: textRule{
		required: true,
		max:      30,
		blank:    "El título de la tarea es obligatorio.",
		tooLong:  "El título no puede tener más de 30 caracteres.",
	},
	description: textRule{
		required: true,
		max:      100,
		blank:    "La descripción de la tarea es obligatoria.",
		tooLong:  "La descripción no puede tener más de 100 caracteres.",
	},
	email:    "El email no es válido.",
	password: "La contraseña debe tener al menos 8 caracteres, una letra mayúscula y un número.",
}

// EditRules apply to the edit-user flow. Task text may be blank there and
// passwords are not editable.
var EditRules = &Rules{
	validator: NewValidator(),
	name: textRule{
		required: true,
		max:      30,
		blank:    "El nombre es obligatorio",
		tooLong:  "El nombre no puede tener más de 30 caracteres",
	},
	title: textRule{
		max:     50,
		tooLong: "El título no puede exceder 50 caracteres",
	},
	description: textRule{
		max:     200,
		tooLong: "La descripción no puede exceder 200 caracteres",
	},
	email: "El email no es válido",
}

// Validate returns the message for value in field, or "" when it passes.
// Unknown fields always pass.
func (r *Rules) Validate(field Field, value string) string {
	_, msg := r.check(field, value)
	return msg
}

func (r *Rules) check(field Field, value string) (ValidationErrorType, string) {
	switch field {
	case FieldName:
		return r.name.check(r.validator, value)
	case FieldTitle:
		return r.title.check(r.validator, value)
	case FieldDescription:
		return r.description.check(r.validator, value)
	case FieldEmail:
		if !r.validator.IsValidEmail(value) {
			return ErrorTypeInvalidFormat, r.email
		}
	case FieldPassword:
		if r.password != "" && !r.validator.IsStrongPassword(value) {
			return ErrorTypeInvalidFormat, r.password
		}
	}
	return "", ""
}

// collect validates each field/value pair and returns the failures, or nil.
func (r *Rules) collect(pairs ...fieldValue) error {
	ve := NewValidationError()
	for _, p := range pairs {
		if typ, msg := r.check(p.field, p.value); msg != "" {
			ve.AddError(p.field, typ, msg, p.value)
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

type fieldValue struct {
	field Field
	value string
}

// ValidateTask checks a task's title and description under r.
func (r *Rules) ValidateTask(title, description string) error {
	return r.collect(
		fieldValue{FieldTitle, title},
		fieldValue{FieldDescription, description},
	)
}

// ValidateNewUser checks the add-user form.
func ValidateNewUser(name, email, password string) error {
	return CreateRules.collect(
		fieldValue{FieldName, name},
		fieldValue{FieldEmail, email},
		fieldValue{FieldPassword, password},
	)
}

// ValidateUserUpdate checks the edit-user form. Task edits are not gated.
func ValidateUserUpdate(name, email string) error {
	return EditRules.collect(
		fieldValue{FieldName, name},
		fieldValue{FieldEmail, email},
	)
}
