package apperror

import "fmt"

// AppError is the error type every layer of the service speaks. Handlers
// translate it into an HTTP response; everything below just returns it.
type AppError struct {
	Code       string // machine-readable code (e.g. INVALID_INPUT)
	Message    string // human-readable message, safe to show to callers
	HTTPStatus int
	Err        error // wrapped cause, never serialized
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches a classification to an underlying error.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
