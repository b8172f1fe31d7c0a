package models

import "fmt"

// Domain error types. helper.HTTPHelper.GetStatusCode maps these to HTTP
// status codes by concrete type.

// ErrorNotFound - unknown document/version/approval id.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorPermissionDenied - caller lacks the role or ownership the operation
// requires.
type ErrorPermissionDenied struct {
	Message string
}

func (e ErrorPermissionDenied) Error() string { return e.Message }

// ErrorInvalidTransition - the requested status pair is not in the allowed
// transition table.
type ErrorInvalidTransition struct {
	From SOPStatus
	To   SOPStatus
	Hint string
}

func (e ErrorInvalidTransition) Error() string {
	msg := fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// ErrorConflictingApproval - a pending approval already exists, or a request
// was already resolved.
type ErrorConflictingApproval struct {
	Message string
}

func (e ErrorConflictingApproval) Error() string { return e.Message }

// ErrorValidation - malformed or missing input (e.g. rejecting without
// comments).
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }
