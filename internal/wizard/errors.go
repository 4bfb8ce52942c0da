package wizard

import "errors"

var (
	ErrValidationFailed = errors.New("step has invalid fields")
	ErrStepNotSkippable = errors.New("step cannot be skipped")
	ErrAlreadyComplete  = errors.New("signup is already complete")
	ErrSubmissionFailed = errors.New("registration failed")
)

// FieldError is a registration failure that belongs to one form field, such
// as an email address that is already taken. The controller shows it as that
// field's validation message.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
