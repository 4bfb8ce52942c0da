package wizard

import "maps"

// Reduce applies a to s and returns the new state. It has no side effects,
// never consults validation rules, and never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetStep:
		next := s.Clone()
		next.CurrentStep = a.Step
		next.Errors = map[string]string{}
		return next

	case UpdateField:
		next := s.Clone()
		next.FormData = s.FormData.With(a.Field, a.Value)
		delete(next.Errors, a.Field)
		return next

	case SetErrors:
		next := s.Clone()
		next.Errors = maps.Clone(a.Errors)
		if next.Errors == nil {
			next.Errors = map[string]string{}
		}
		return next

	case ClearError:
		next := s.Clone()
		delete(next.Errors, a.Field)
		return next

	case SetSubmitting:
		next := s.Clone()
		next.IsSubmitting = a.Submitting
		return next

	case SetHighestCompletedStep:
		next := s.Clone()
		next.HighestCompletedStep = max(s.HighestCompletedStep, a.Step)
		return next

	case Reset:
		return InitialState()

	default:
		return s
	}
}
