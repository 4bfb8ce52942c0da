// Package form holds the signup record shared by the wizard, its validation
// schemas and the snapshot codec.
package form

import (
	"fmt"
	"maps"
)

// Field names, in the order the wizard asks for them.
const (
	// Step 1
	FieldRole = "role"

	// Step 2
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"

	// Step 3
	FieldPhone       = "phone"
	FieldCity        = "city"
	FieldCountry     = "country"
	FieldLinkedInURL = "linkedinUrl"

	// Step 4
	FieldHeadline        = "headline"
	FieldCurrentTitle    = "currentTitle"
	FieldCompanyName     = "companyName"
	FieldYearsExperience = "yearsExperience"
	FieldSkills          = "skills"

	// Step 5. The only field that is not a string.
	FieldResume = "resume"
)

// Roles accepted for FieldRole.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

var textFields = []string{
	FieldRole,
	FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword,
	FieldPhone, FieldCity, FieldCountry, FieldLinkedInURL,
	FieldHeadline, FieldCurrentTitle, FieldCompanyName, FieldYearsExperience, FieldSkills,
}

var labels = map[string]string{
	FieldRole:            "Role",
	FieldFirstName:       "First name",
	FieldLastName:        "Last name",
	FieldEmail:           "Email",
	FieldPassword:        "Password",
	FieldConfirmPassword: "Password confirmation",
	FieldPhone:           "Phone number",
	FieldCity:            "City",
	FieldCountry:         "Country",
	FieldLinkedInURL:     "LinkedIn URL",
	FieldHeadline:        "Headline",
	FieldCurrentTitle:    "Current title",
	FieldCompanyName:     "Company name",
	FieldYearsExperience: "Years of experience",
	FieldSkills:          "Skills",
	FieldResume:          "Resume",
}

// TextFields returns every string-valued field in wizard order.
func TextFields() []string {
	out := make([]string, len(textFields))
	copy(out, textFields)
	return out
}

// IsKnown reports whether field belongs to the signup record.
func IsKnown(field string) bool {
	_, ok := labels[field]
	return ok
}

// Label returns a human-readable name for field, or field itself when unknown.
func Label(field string) string {
	if label, ok := labels[field]; ok {
		return label
	}
	return field
}

// Data is the flat union of every field across all wizard steps. Values holds
// the string fields; Resume is the in-memory file handle, nil when no file has
// been selected.
type Data struct {
	Values map[string]string
	Resume *File
}

// Empty returns a record with every known text field set to "".
func Empty() Data {
	values := make(map[string]string, len(textFields))
	for _, field := range textFields {
		values[field] = ""
	}
	return Data{Values: values}
}

// Get returns the string value of field, or "" when unset.
func (d Data) Get(field string) string {
	return d.Values[field]
}

// Clone returns a copy that shares no maps with d. The file handle itself is
// shared; files are never mutated after selection.
func (d Data) Clone() Data {
	values := maps.Clone(d.Values)
	if values == nil {
		values = map[string]string{}
	}
	return Data{Values: values, Resume: d.Resume}
}

// With returns a copy of d with field set to value. FieldResume accepts a
// *File or nil; every other field is stored as a string.
func (d Data) With(field string, value any) Data {
	next := d.Clone()
	if field == FieldResume {
		file, _ := value.(*File)
		next.Resume = file
		return next
	}
	next.Values[field] = stringValue(value)
	return next
}

// Record returns the plain string record validation schemas consume.
func (d Data) Record() map[string]string {
	return maps.Clone(d.Values)
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
