// Package errs provides the typed errors returned by the lifecycle managers.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrConflict, ...) used with errors.Is
//   - a struct carrying the details a caller needs to render a specific message
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The sentinels form the error taxonomy of the service:
//
//	ErrObjectNotFound      entity absent
//	ErrConflict            status precondition violated (already accepted, already cancelled, lost race)
//	ErrExpired             time-boxed entity past its deadline
//	ErrForbidden           caller not allowed to act on the entity
//	ErrInvalidReference    linked entity missing, of the wrong kind or owned by someone else
//	ErrNotApproved         NGO not approved or deactivated
//	ErrValueIsInvalid      malformed input (with ErrValueIsRequired and ErrValueIsOutOfRange)
package errs
