// Package models defines the complaint domain entities, closed enum types,
// request/response shapes and the typed errors the engine returns. All engine
// errors are pure value returns: when one is raised, no state has been
// mutated.
package models

import "fmt"

// ValidationError indicates malformed or out-of-range input: oversized text,
// inactive reference data, a bad rating value, a breached submission limit.
// Surfaced to the caller as a rejected request, never partially applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IllegalTransitionError indicates a status transition outside the allowed
// table, including requesting the current status again.
type IllegalTransitionError struct {
	From ComplaintStatus
	To   ComplaintStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

// InvalidAssignmentError indicates an assignment attempted on a complaint
// whose status forbids it (closed or rejected), or a transition into
// assigned without a handler set.
type InvalidAssignmentError struct {
	Status  ComplaintStatus
	Message string
}

func (e *InvalidAssignmentError) Error() string {
	return fmt.Sprintf("invalid assignment (status %s): %s", e.Status, e.Message)
}

// InvalidRatingError indicates a satisfaction rating outside 1..5 or a
// rating attempt before the complaint reached resolved or closed.
type InvalidRatingError struct {
	Message string
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("invalid rating: %s", e.Message)
}

// NotFoundError indicates an unknown complaint, type, governorate or deputy id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError indicates a lost-update race: another actor modified the
// complaint between read and write. The caller must retry with fresh state.
type ConflictError struct {
	ComplaintID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of complaint %s, retry with fresh state", e.ComplaintID)
}
