package cli

import (
	"errors"
	"fmt"
	"testing"

	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/services"
	"uadmin/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Field validation error",
			operation: "add user",
			err:       validation.ValidateNewUser("Ana", "no-es-email", "Secreto12"),
			expected:  "failed to add user: El email no es válido.",
		},
		{
			name:      "Not found error",
			operation: "view user",
			err:       apperrors.NewNotFoundError("user", "123"),
			expected:  "failed to view user: user not found: 123",
		},
		{
			name:      "Remote status error",
			operation: "delete user",
			err:       &gateway.StatusError{Op: "delete user", Method: "DELETE", Path: "/users/1", StatusCode: 500},
			expected:  "failed to delete user: The remote API rejected the request. Please try again.",
		},
		{
			name:      "Missing remote user",
			operation: "delete user",
			err:       &gateway.StatusError{Op: "delete user", Method: "DELETE", Path: "/users/1", StatusCode: 404},
			expected:  "failed to delete user: user no longer exists on the server",
		},
		{
			name:      "Busy flow",
			operation: "save user",
			err:       services.ErrBusy,
			expected:  "failed to save user: another request is still running",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Invalid input error",
			err:      apperrors.NewInvalidInputError("format", "xml", "must be table or json"),
			expected: apperrors.NewInvalidInputError("format", "xml", "must be table or json").Message,
		},
		{
			name:     "Transport error",
			err:      apperrors.NewTransportError("list users", errors.New("refused")),
			expected: "The remote API could not be reached. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()
	notFound := &gateway.StatusError{Op: "get", Method: "GET", Path: "/users/9", StatusCode: 404}
	rejected := &gateway.StatusError{Op: "get", Method: "GET", Path: "/users/9", StatusCode: 400}
	wrapped := fmt.Errorf("outer: %w", apperrors.NewTransportError("get", nil))
	fieldErr := &validation.ValidationError{Errors: []validation.FieldError{{Field: validation.FieldName, Message: "invalid"}}}

	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		remote     bool
	}{
		{name: "field validation", err: fieldErr, validation: true},
		{name: "app validation", err: apperrors.NewValidationError("bad", nil), validation: true},
		{name: "404 reply", err: notFound, notFound: true},
		{name: "400 reply", err: rejected, remote: true},
		{name: "wrapped transport", err: wrapped, remote: true},
		{name: "plain", err: errors.New("plain")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eh.IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.validation)
			}
			if got := eh.IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.notFound)
			}
			if got := eh.IsRemoteError(tt.err); got != tt.remote {
				t.Errorf("IsRemoteError() = %v, want %v", got, tt.remote)
			}
		})
	}
}

func TestErrorHandler_ExitCodes(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{
			name: "validation",
			err:  validation.ValidateUserUpdate("", "ana@example.com"),
			code: "UNKNOWN_ERROR",
			exit: ExitInvalid,
		},
		{
			name: "invalid input",
			err:  apperrors.NewInvalidInputError("user id", "x", "must be a positive number"),
			code: "INVALID_INPUT",
			exit: ExitInvalid,
		},
		{
			name: "missing user",
			err:  &gateway.StatusError{Op: "get user", Method: "GET", Path: "/users/4", StatusCode: 404},
			code: "NOT_FOUND",
			exit: ExitNotFound,
		},
		{
			name: "rejected",
			err:  &gateway.StatusError{Op: "update user", Method: "PUT", Path: "/users/4", StatusCode: 500},
			code: "REMOTE_ERROR",
			exit: ExitRemote,
		},
		{
			name: "unreachable",
			err:  apperrors.NewTransportError("list users", errors.New("connection refused")),
			code: "TRANSPORT_ERROR",
			exit: ExitRemote,
		},
		{
			name: "busy",
			err:  services.ErrBusy,
			code: "UNKNOWN_ERROR",
			exit: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eh.Handle("run", tt.err)

			var ce *CommandError
			if !errors.As(err, &ce) {
				t.Fatalf("Handle() returned %T, want *CommandError", err)
			}
			if ce.Code != tt.code {
				t.Errorf("Code = %q, want %q", ce.Code, tt.code)
			}
			if got := ExitCode(err); got != tt.exit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.exit)
			}
		})
	}

	if got := ExitCode(errors.New("cobra: unknown flag")); got != ExitFailure {
		t.Errorf("ExitCode(plain) = %d, want %d", got, ExitFailure)
	}
}
