package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"todoapp/internal/todo"
)

// Machine-readable error codes surfaced in GraphQL error extensions.
const (
	codeNotFound   = "TODO_NOT_FOUND"
	codeValidation = "TODO_VALIDATION"
)

// apiError carries a stable code into GraphQL error extensions. It
// implements gqlerrors.ExtendedError.
type apiError struct {
	message string
	code    string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func notFoundError(id uuid.UUID) error {
	return &apiError{
		message: fmt.Sprintf("Todo '%s' was not found.", id),
		code:    codeNotFound,
	}
}

// wrapServiceError converts service errors into coded GraphQL errors,
// passing everything else through untouched.
func wrapServiceError(err error, id uuid.UUID) error {
	var ve *todo.ValidationError
	switch {
	case errors.As(err, &ve):
		return &apiError{message: ve.Error(), code: codeValidation}
	case errors.Is(err, todo.ErrNotFound):
		return notFoundError(id)
	default:
		return err
	}
}
