package wizard

// Action is a discrete change applied by Reduce. The set is closed.
type Action interface {
	action()
}

// SetStep moves to Step and drops every validation message. Bounds are the
// caller's job.
type SetStep struct{ Step int }

// UpdateField sets one form field and clears that field's error only.
type UpdateField struct {
	Field string
	Value any
}

// SetErrors replaces all validation messages.
type SetErrors struct{ Errors map[string]string }

// ClearError drops the message of one field.
type ClearError struct{ Field string }

// SetSubmitting toggles the in-flight registration flag.
type SetSubmitting struct{ Submitting bool }

// SetHighestCompletedStep raises the furthest completed step. Lower values
// are ignored.
type SetHighestCompletedStep struct{ Step int }

// Reset returns to InitialState.
type Reset struct{}

func (SetStep) action()                 {}
func (UpdateField) action()             {}
func (SetErrors) action()               {}
func (ClearError) action()              {}
func (SetSubmitting) action()           {}
func (SetHighestCompletedStep) action() {}
func (Reset) action()                   {}

// ActionName returns the log name of a.
func ActionName(a Action) string {
	switch a.(type) {
	case SetStep:
		return "SET_STEP"
	case UpdateField:
		return "UPDATE_FIELD"
	case SetErrors:
		return "SET_ERRORS"
	case ClearError:
		return "CLEAR_ERROR"
	case SetSubmitting:
		return "SET_SUBMITTING"
	case SetHighestCompletedStep:
		return "SET_HIGHEST_COMPLETED_STEP"
	case Reset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}
