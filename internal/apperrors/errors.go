package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports every violated field of a quiz or question
// definition at once, not just the first one found.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// NotFoundError means a quiz or attempt id did not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

// MalformedInputError means the submission payload itself was unusable
// (responses not a sequence, required fields missing). Rejected before
// grading starts.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

func NewMalformedInputError(reason string) *MalformedInputError {
	return &MalformedInputError{Reason: reason}
}

// ForbiddenError means the caller is authenticated but does not own the
// resource it is trying to mutate.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsMalformedInput(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}

func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
