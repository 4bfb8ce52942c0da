// Package wizard implements the six-step signup wizard: a pure state machine,
// the step sequence, and the controller that gates navigation and keeps the
// state in tab-scoped storage across reloads.
package wizard

import (
	"maps"

	"github.com/justsurfingit/jobboard/internal/form"
)

// State is everything the wizard knows about one signup in progress.
//
// CurrentStep is where the user is; HighestCompletedStep is how far they have
// ever got. The two move independently: going back lowers the first and never
// the second.
type State struct {
	CurrentStep          int
	HighestCompletedStep int
	FormData             form.Data
	Errors               map[string]string
	IsSubmitting         bool
}

// InitialState is the state of a freshly mounted wizard.
func InitialState() State {
	return State{
		CurrentStep:          1,
		HighestCompletedStep: 0,
		FormData:             form.Empty(),
		Errors:               map[string]string{},
	}
}

// Clone returns a copy of s that shares no maps with it.
func (s State) Clone() State {
	next := s
	next.FormData = s.FormData.Clone()
	next.Errors = maps.Clone(s.Errors)
	if next.Errors == nil {
		next.Errors = map[string]string{}
	}
	return next
}
