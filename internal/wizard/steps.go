package wizard

import (
	"slices"

	"github.com/justsurfingit/jobboard/internal/form"
)

// StepCount is the number of wizard steps; the last one is terminal.
const StepCount = 6

// Step is the static description of one wizard page.
type Step struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Optional bool     `json:"optional"`
	Terminal bool     `json:"terminal"`
	Fields   []string `json:"fields,omitempty"`
}

var steps = [StepCount]Step{
	{Index: 1, Name: "role", Title: "How will you use the job board?", Fields: []string{form.FieldRole}},
	{Index: 2, Name: "account", Title: "Create your account", Fields: []string{form.FieldFirstName, form.FieldLastName, form.FieldEmail, form.FieldPassword, form.FieldConfirmPassword}},
	{Index: 3, Name: "contact", Title: "How can employers reach you?", Fields: []string{form.FieldPhone, form.FieldCity, form.FieldCountry, form.FieldLinkedInURL}},
	{Index: 4, Name: "background", Title: "Tell us about your work", Optional: true, Fields: []string{form.FieldHeadline, form.FieldCurrentTitle, form.FieldCompanyName, form.FieldYearsExperience, form.FieldSkills}},
	{Index: 5, Name: "resume", Title: "Upload your resume", Optional: true, Fields: []string{form.FieldResume}},
	{Index: 6, Name: "complete", Title: "You're all set", Terminal: true},
}

// Steps returns the ordered step list.
func Steps() []Step {
	out := make([]Step, 0, StepCount)
	for _, s := range steps {
		out = append(out, s.clone())
	}
	return out
}

// StepAt returns the step with index n.
func StepAt(n int) (Step, bool) {
	if n < 1 || n > StepCount {
		return Step{}, false
	}
	return steps[n-1].clone(), true
}

// StepOf returns the index of the step that asks for field.
func StepOf(field string) (int, bool) {
	for _, s := range steps {
		if slices.Contains(s.Fields, field) {
			return s.Index, true
		}
	}
	return 0, false
}

// IsOptional reports whether step n can be skipped without validation.
func IsOptional(n int) bool {
	s, ok := StepAt(n)
	return ok && s.Optional
}

// IsTerminal reports whether step n is the completion step.
func IsTerminal(n int) bool {
	return n == StepCount
}

func (s Step) clone() Step {
	s.Fields = append([]string(nil), s.Fields...)
	return s
}

func clampStep(n int) int {
	return min(max(n, 1), StepCount)
}
