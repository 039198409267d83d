package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrTransientStore    = errors.New("transient store error")
	ErrFatalStore        = errors.New("fatal store error")
)

// IsValidation reports whether err is one of the validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(v any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but unacceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports that an object with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError reports that Subject may not perform Action.
type ForbiddenError struct {
	Subject string
	Action  string
}

func NewForbiddenError(subject, action string) *ForbiddenError {
	return &ForbiddenError{Subject: subject, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Subject, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError reports an illegal lifecycle transition. Current holds a
// snapshot of the object as it is now.
type InvalidStateError struct {
	Entity  string
	ID      string
	State   string
	Action  string
	Current any
}

func NewInvalidStateError(entity, id, state, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, ID: id, State: state, Action: action}
}

func NewInvalidStateErrorWithCurrent(entity, id, state, action string, current any) *InvalidStateError {
	return &InvalidStateError{Entity: entity, ID: id, State: state, Action: action, Current: current}
}

func (e *InvalidStateError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: cannot %s %s in state %s", ErrInvalidState, e.Action, e.Entity, e.State)
	}
	return fmt.Sprintf("%s: cannot %s %s %s in state %s", ErrInvalidState, e.Action, e.Entity, e.ID, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a stale precondition. Current holds a snapshot of the
// object as it is now.
type ConflictError struct {
	Entity  string
	ID      string
	Reason  string
	Current any
}

func NewConflictError(entity, id, reason string, current any) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason, Current: current}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrConflict, e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// CapacityExceededError reports that Resource has handed out all Limit values.
type CapacityExceededError struct {
	Resource string
	Limit    int
}

func NewCapacityExceededError(resource string, limit int) *CapacityExceededError {
	return &CapacityExceededError{Resource: resource, Limit: limit}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s, limit is %d", ErrCapacityExceeded, e.Resource, e.Limit)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// TransientStoreError wraps a store failure that is safe to retry
// (serialization failure, deadlock victim, lock timeout, dropped connection).
type TransientStoreError struct {
	Op    string
	Cause error
}

func NewTransientStoreError(op string, cause error) *TransientStoreError {
	return &TransientStoreError{Op: op, Cause: cause}
}

func (e *TransientStoreError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrTransientStore, e.Op), e.Cause)
}

func (e *TransientStoreError) Unwrap() []error {
	return []error{ErrTransientStore, e.Cause}
}

// FatalStoreError wraps an unexpected store failure. It is never retried.
type FatalStoreError struct {
	Op    string
	Cause error
}

func NewFatalStoreError(op string, cause error) *FatalStoreError {
	return &FatalStoreError{Op: op, Cause: cause}
}

func (e *FatalStoreError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrFatalStore, e.Op), e.Cause)
}

func (e *FatalStoreError) Unwrap() []error {
	return []error{ErrFatalStore, e.Cause}
}
