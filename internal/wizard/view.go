package wizard

import (
	"maps"

	"github.com/justsurfingit/jobboard/internal/snapshot"
)

// View is what a step page renders: the step matching CurrentStep, the form
// data with the resume shown as metadata, and the navigation it may offer.
type View struct {
	Steps                []Step            `json:"steps"`
	Step                 Step              `json:"step"`
	CurrentStep          int               `json:"currentStep"`
	HighestCompletedStep int               `json:"highestCompletedStep"`
	FormData             snapshot.Record   `json:"formData"`
	Errors               map[string]string `json:"errors"`
	IsSubmitting         bool              `json:"isSubmitting"`
	CanGoBack            bool              `json:"canGoBack"`
	CanSkip              bool              `json:"canSkip"`
	Complete             bool              `json:"complete"`
}

// Render builds the view of s.
func Render(s State) View {
	step, _ := StepAt(clampStep(s.CurrentStep))
	errs := maps.Clone(s.Errors)
	if errs == nil {
		errs = map[string]string{}
	}
	return View{
		Steps:                Steps(),
		Step:                 step,
		CurrentStep:          s.CurrentStep,
		HighestCompletedStep: s.HighestCompletedStep,
		FormData:             snapshot.Encode(s.FormData),
		Errors:               errs,
		IsSubmitting:         s.IsSubmitting,
		CanGoBack:            s.CurrentStep > 1 && !IsTerminal(s.CurrentStep),
		CanSkip:              IsOptional(s.CurrentStep),
		Complete:             IsTerminal(s.CurrentStep),
	}
}
