package apperrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInternal marks an unexpected infrastructure failure outside a batch transaction.
var ErrInternal = errors.New("internal error")

// ErrPrecondition indicates that one or more targeted gifts failed the state guard of an action.
var ErrPrecondition = errors.New("precondition violated")

// ErrNoChange indicates that a validated batch matched zero rows when the mutation ran.
var ErrNoChange = errors.New("no gifts found or no changes made")

// ErrConcurrentModification indicates that some validated gifts changed state before the mutation ran.
var ErrConcurrentModification = errors.New("gifts were modified concurrently")

// ErrTransaction indicates that the datastore failed while mutating a batch.
var ErrTransaction = errors.New("transaction failed")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// GiftViolation lists every reason a single gift cannot take part in an action.
type GiftViolation struct {
	GiftID int64    `json:"giftId"`
	Issues []string `json:"issues"`
}

// PreconditionError aggregates the guard violations of a whole batch.
type PreconditionError struct {
	Message       string
	Violations    []GiftViolation
	RequiresModal bool
}

func (e *PreconditionError) Error() string {
	ids := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		ids = append(ids, strconv.FormatInt(v.GiftID, 10))
	}
	return fmt.Sprintf("%s (gifts: %s)", e.Message, strings.Join(ids, ", "))
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// TransactionError wraps a datastore failure that forced a rollback.
type TransactionError struct {
	Stage string
	Err   error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed during %s: %v", e.Stage, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func (e *TransactionError) Is(target error) bool {
	return target == ErrTransaction
}
