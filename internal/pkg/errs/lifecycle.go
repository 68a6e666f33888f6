package errs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConflict         = errors.New("conflict")
	ErrExpired          = errors.New("expired")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidReference = errors.New("invalid reference")
	ErrNotApproved      = errors.New("not approved")
)

// ConflictError reports that Action could not be applied to the entity because
// its current status does not allow it.
type ConflictError struct {
	Entity string
	ID     any
	Action string
	Actual string
	Cause  error
}

func NewConflictError(entity string, id any, action, actual string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Action: action, Actual: actual}
}

func NewConflictErrorWithCause(entity string, id any, action, actual string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Action: action, Actual: actual, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s %s %v in status %s", ErrConflict, e.Action, e.Entity, e.ID, e.Actual)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ExpiredError reports that a time-boxed entity passed its deadline.
type ExpiredError struct {
	Entity    string
	ID        any
	ExpiredAt time.Time
}

func NewExpiredError(entity string, id any, expiredAt time.Time) *ExpiredError {
	return &ExpiredError{Entity: entity, ID: id, ExpiredAt: expiredAt}
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s: %s %v expired at %s", ErrExpired, e.Entity, e.ID, e.ExpiredAt.UTC().Format(time.RFC3339))
}

func (e *ExpiredError) Unwrap() error {
	return ErrExpired
}

// ForbiddenError reports that ActorID may not perform Action on the entity.
type ForbiddenError struct {
	Entity  string
	ID      any
	ActorID any
	Action  string
}

func NewForbiddenError(entity string, id any, actorID any, action string) *ForbiddenError {
	return &ForbiddenError{Entity: entity, ID: id, ActorID: actorID, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %v may not %s %s %v", ErrForbidden, e.ActorID, e.Action, e.Entity, e.ID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidReferenceError reports a linked entity that is missing, of the wrong
// kind, or owned by someone else.
type InvalidReferenceError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewInvalidReferenceError(paramName string, id any, reason string) *InvalidReferenceError {
	return &InvalidReferenceError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrInvalidReference, e.ParamName, e.ID, e.Reason)
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// NotApprovedError reports an NGO that is not approved or no longer active.
type NotApprovedError struct {
	ID any
}

func NewNotApprovedError(id any) *NotApprovedError {
	return &NotApprovedError{ID: id}
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("%s: ngo %v is not approved or inactive", ErrNotApproved, e.ID)
}

func (e *NotApprovedError) Unwrap() error {
	return ErrNotApproved
}
