// Package services holds the flows that coordinate validation, drafts and
// the remote gateway: add, edit, delete and view a user, plus the Board that
// owns the list state.
package services

import (
	"errors"

	"uadmin/internal/logging"
	"uadmin/internal/notify"
)

// Phase is where a flow stands in its submit cycle.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when an action is started again while its
	// previous request is still outstanding.
	ErrBusy = errors.New("request already in progress")

	// ErrAlreadyCreated is returned by AddFlow.Submit once the user exists
	// remotely. Resubmitting would create a duplicate.
	ErrAlreadyCreated = errors.New("user already created")

	// ErrPartialCreate wraps the task failures of an add whose user was
	// created.
	ErrPartialCreate = errors.New("user created but some tasks were not")

	// ErrNoSelection is returned by DeleteFlow.Confirm when no user is open.
	ErrNoSelection = errors.New("no user selected")
)

// User-facing notifications.
const (
	msgLoadFailed = "Error al cargar los usuarios"

	msgFormInvalid     = "Corrige los errores en el formulario."
	msgDraftInvalid    = "Corrige los errores en la nueva tarea."
	msgDraftAdded      = "Tarea agregada con éxito."
	msgUserAdded       = "Usuario y tareas agregados con éxito."
	msgUserAddFailed   = "Error al agregar el usuario. Por favor, verifica los datos y vuelve a intentarlo."
	msgEditFormInvalid = "Corrige los errores en el formulario"
	msgEditTaskInvalid = "Corrige los errores en la nueva tarea"
	msgTaskAddFailed   = "Error al agregar la tarea. Por favor, intenta de nuevo."
	msgTaskDeleted     = "Tarea eliminada con éxito."
	msgTaskDelFailed   = "Error al eliminar la tarea. Por favor, intenta de nuevo."
	msgSaved           = "Cambios guardados correctamente."
	msgSaveFailed      = "Error al guardar los cambios. Por favor, intenta de nuevo."
	msgUserDeleted     = "Usuario eliminado con éxito"
	msgUserDelFailed   = "Error al eliminar usuario"
)

type action string

const (
	actionAddTask    action = "add task"
	actionDeleteTask action = "delete task"
	actionSave       action = "save"
)

// inflight tracks which actions of a flow have an outstanding request.
// Callers hold the flow's mutex.
type inflight map[action]bool

func (in inflight) begin(a action) bool {
	if in[a] {
		return false
	}
	in[a] = true
	return true
}

func (in inflight) end(a action) {
	delete(in, a)
}

func (in inflight) any() bool {
	return len(in) > 0
}

// reportFailure logs the detail of a failed gateway call and shows only the
// generic message.
func reportFailure(sink notify.Sink, op string, err error, message string) {
	logging.Errorf("%s: %v", op, err)
	sink.Notify(message, notify.Error)
}
