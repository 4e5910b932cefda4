package services

import (
	"errors"
	"fmt"

	"github.com/taskbridge/taskbridge-api/internal/models"
)

// Sentinel errors shared across services.
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotPermitted is an authorization failure. Handlers surface it
	// generically so an unauthorized caller cannot probe for existence.
	ErrNotPermitted = errors.New("not permitted")

	// ErrTaskAlreadyClaimed means the caller lost the claim race; the task
	// view should be refreshed, not retried.
	ErrTaskAlreadyClaimed = errors.New("task already claimed")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrInvalidOTP         = errors.New("invalid one-time code")
	ErrExpiredOTP         = errors.New("one-time code has expired")
)

// ValidationError reports missing or malformed input; the message is safe
// to surface verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError reports a lifecycle precondition failure, naming
// the attempted edge so the client can explain it.
type InvalidTransitionError struct {
	Op     string
	Status models.TaskStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a task in status %s", e.Op, e.Status)
}

func invalidTransition(op string, status models.TaskStatus) error {
	return &InvalidTransitionError{Op: op, Status: status}
}
