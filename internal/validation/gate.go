package validation

import (
	"strings"

	"github.com/justsurfingit/jobboard/internal/form"
)

// formKey is reported for violations that do not name a field.
const formKey = "form"

// Gate decides whether the wizard may leave a step.
type Gate struct {
	schemas map[int]Schema
}

// NewGate returns a gate over the given step schemas.
func NewGate(schemas map[int]Schema) *Gate {
	return &Gate{schemas: schemas}
}

// NewDefaultGate returns a gate over DefaultSchemas.
func NewDefaultGate() (*Gate, error) {
	engine, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return NewGate(DefaultSchemas(engine)), nil
}

// Check validates the record against the schema of step. It returns the
// field errors and whether the step passed; steps without a schema always pass.
func (g *Gate) Check(step int, data form.Data) (map[string]string, bool) {
	schema, ok := g.schemas[step]
	if !ok {
		return nil, true
	}
	violations := schema.Validate(data.Record())
	if len(violations) == 0 {
		return nil, true
	}
	return Flatten(violations), false
}

// Flatten reduces violations to a field→message map keyed by the first path
// segment. When a field fails more than once the first message wins.
func Flatten(violations []Violation) map[string]string {
	errs := make(map[string]string, len(violations))
	for _, v := range violations {
		key := formKey
		if len(v.Path) > 0 && v.Path[0] != "" {
			key, _, _ = strings.Cut(v.Path[0], "[")
		}
		if _, seen := errs[key]; seen {
			continue
		}
		errs[key] = v.Message
	}
	return errs
}
