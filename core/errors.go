package core

import "github.com/pkg/errors"

// StatusCoder is implemented by transport errors carrying an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// ErrStatusCode extracts the HTTP status from err's cause chain; 0 when err
// carries none.
func ErrStatusCode(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}
