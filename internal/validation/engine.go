// Package validation holds the per-step signup schemas and the gate that
// decides whether the wizard may move past a step.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)

// Engine wraps a configured validator and the English translator used to
// render violation messages.
type Engine struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewEngine builds a validator that names fields by their json tag and knows
// the custom "password" and "phone" rules.
func NewEngine() (*Engine, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"password", strongPassword, "{0} must contain an uppercase letter, a lowercase letter and a digit"},
		{"phone", phoneNumber, "{0} must be a valid phone number"},
	}
	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, fmt.Errorf("register %s rule: %w", rule.tag, err)
		}
		if err := validate.RegisterTranslation(rule.tag, trans, registerMessage(rule.tag, rule.message), translate(rule.tag)); err != nil {
			return nil, fmt.Errorf("register %s translation: %w", rule.tag, err)
		}
	}

	return &Engine{validate: validate, trans: trans}, nil
}

// MustEngine is NewEngine for package-level setup; it panics on error.
func MustEngine() *Engine {
	engine, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return engine
}

func registerMessage(tag, message string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, message, true)
	}
}

func translate(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func phoneNumber(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
