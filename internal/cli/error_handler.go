package cli

import (
	"errors"
	"fmt"

	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/services"
	"uadmin/internal/validation"
)

// Exit statuses reported by the uadmin binary
const (
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
	ExitRemote   = 4
)

// CommandError is a command failure already worded for the terminal
type CommandError struct {
	Message  string
	Code     string
	ExitCode int
}

func (e *CommandError) Error() string {
	return e.Message
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return ExitFailure
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return eh.wrap(fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return eh.wrap(eh.message(err), err)
}

func (eh *ErrorHandler) wrap(message string, err error) *CommandError {
	return &CommandError{Message: message, Code: eh.GetErrorCode(err), ExitCode: eh.exitCode(err)}
}

func (eh *ErrorHandler) exitCode(err error) int {
	switch {
	case eh.IsValidationError(err), apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput):
		return ExitInvalid
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.IsRemoteError(err):
		return ExitRemote
	}
	return ExitFailure
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	switch {
	case errors.Is(err, services.ErrBusy):
		return "another request is still running"
	case errors.Is(err, services.ErrPartialCreate):
		// The user exists; only some of its tasks are missing.
		return err.Error()
	case gateway.IsNotFound(err):
		// The record was there when it was looked up.
		return fmt.Sprintf("%s no longer exists on the server", resourceName(err))
	}

	if _, ok := apperrors.AsAppError(err); ok {
		return apperrors.GetUserMessage(err)
	}
	return err.Error()
}

func resourceName(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if name, ok := appErr.GetContext("resource"); ok {
			return fmt.Sprint(name)
		}
	}
	return "record"
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound)
}

// IsRemoteError checks if the API rejected or never received the request
func (eh *ErrorHandler) IsRemoteError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeRemote) ||
		apperrors.IsErrorType(err, apperrors.ErrorTypeTransport)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}
