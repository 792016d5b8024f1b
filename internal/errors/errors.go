package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type fields map[string]interface{}

func newError(t ErrorType, code, message string, cause error, ctx fields) *AppError {
	if ctx == nil {
		ctx = fields{}
	}
	return &AppError{Type: t, Message: message, Code: code, Cause: cause, Context: ctx}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause, nil)
}

// NewNotFoundError reports a missing user or task
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		fields{"resource": resource, "identifier": identifier})
}

// NewRemoteError creates an error for a non-successful reply of the remote API
func NewRemoteError(operation string, status int, cause error) *AppError {
	return newError(ErrorTypeRemote, "REMOTE_ERROR",
		fmt.Sprintf("remote call failed: %s (HTTP %d)", operation, status), cause,
		fields{"operation": operation, "status": status})
}

// NewTransportError creates an error for a call that never got a reply
func NewTransportError(operation string, cause error) *AppError {
	return newError(ErrorTypeTransport, "TRANSPORT_ERROR",
		fmt.Sprintf("could not reach remote API: %s", operation), cause,
		fields{"operation": operation})
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		fields{"field": field, "value": value, "reason": reason})
}

// NewTimeoutError reports a call that ran past its deadline
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, "TIMEOUT",
		fmt.Sprintf("operation timed out: %s", operation), nil,
		fields{"operation": operation, "timeout": timeout})
}

// NewDatabaseError wraps a failure of the dev server's store
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "DATABASE_ERROR",
		fmt.Sprintf("database operation failed: %s", operation), cause,
		fields{"operation": operation})
}

// NewConflictError creates an error for a write that clashes with existing data
func NewConflictError(resource string, reason string) *AppError {
	return newError(ErrorTypeConflict, "CONFLICT",
		fmt.Sprintf("%s conflict: %s", resource, reason), nil,
		fields{"resource": resource, "reason": reason})
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, errorType.String(), message, err, nil)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

var genericMessages = map[ErrorType]string{
	ErrorTypeRemote:    "The remote API rejected the request. Please try again.",
	ErrorTypeTransport: "The remote API could not be reached. Please try again.",
	ErrorTypeDatabase:  "A database error occurred. Please try again.",
	ErrorTypeTimeout:   "The operation timed out. Please try again.",
}

// GetUserMessage returns the text shown to the operator. System failures get
// a generic sentence; user errors keep their own message.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type.UserFacing() {
		return appErr.Message
	}
	if msg, ok := genericMessages[appErr.Type]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for mistakes made by the operator.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.UserFacing()
}

// HTTPStatus maps err to the status the dev server replies with.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}
