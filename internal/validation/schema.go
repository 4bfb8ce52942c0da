package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/justsurfingit/jobboard/internal/form"
)

// Violation is one failed rule. Path is the field path inside the record;
// nested fields produce more than one segment.
type Violation struct {
	Path    []string
	Message string
}

// Schema validates a plain record and returns its violations in schema order.
// An empty result means the record is valid.
type Schema interface {
	Validate(record map[string]string) []Violation
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc func(record map[string]string) []Violation

// Validate calls f(record).
func (f SchemaFunc) Validate(record map[string]string) []Violation {
	return f(record)
}

// StructSchema decodes the record into T and runs the struct's validate tags.
// Messages overrides the default message for a "field.tag" pair.
type StructSchema[T any] struct {
	engine   *Engine
	messages map[string]string
}

// NewStructSchema returns a schema over T.
func NewStructSchema[T any](engine *Engine, messages map[string]string) *StructSchema[T] {
	return &StructSchema[T]{engine: engine, messages: messages}
}

// Validate implements Schema.
func (s *StructSchema[T]) Validate(record map[string]string) []Violation {
	var target T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &target,
	})
	if err == nil {
		err = decoder.Decode(record)
	}
	if err != nil {
		return []Violation{{Message: "The form could not be read. Please try again."}}
	}

	err = s.engine.validate.Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		violations = append(violations, Violation{Path: path, Message: s.message(path, fe)})
	}
	return violations
}

func (s *StructSchema[T]) message(path []string, fe validator.FieldError) string {
	key := strings.Join(path, ".") + "." + fe.Tag()
	if msg, ok := s.messages[key]; ok {
		return msg
	}
	msg := fe.Translate(s.engine.trans)
	return strings.Replace(msg, fe.Field(), form.Label(fe.Field()), 1)
}

// fieldPath drops the struct type name the validator puts at the head of a
// namespace, e.g. "AccountStep.email" becomes ["email"].
func fieldPath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return parts
}
