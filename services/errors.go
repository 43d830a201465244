package services

import "fmt"

// Error kinds map onto the HTTP surface: validation 400, authorization 403,
// not found 404, state conflict 409.
const (
	ErrKindValidation    = "validation"
	ErrKindAuthorization = "authorization"
	ErrKindNotFound      = "not_found"
	ErrKindStateConflict = "state_conflict"
)

// WorkflowError is a classified error surfaced to the caller as a message string.
type WorkflowError struct {
	Kind    string
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func ValidationError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func AuthorizationError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func StateConflictError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrKindStateConflict, Message: fmt.Sprintf(format, args...)}
}
