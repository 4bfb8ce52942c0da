package validation

import (
	"testing"

	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := NewDefaultGate()
	require.NoError(t, err)
	return gate
}

func validAccount() form.Data {
	return form.Empty().
		With(form.FieldFirstName, "Ada").
		With(form.FieldLastName, "Lovelace").
		With(form.FieldEmail, "ada@example.com").
		With(form.FieldPassword, "Aa1aaaaa").
		With(form.FieldConfirmPassword, "Aa1aaaaa")
}

func TestGateRoleRequired(t *testing.T) {
	gate := newTestGate(t)

	errs, ok := gate.Check(1, form.Empty())
	assert.False(t, ok)
	assert.Equal(t, map[string]string{form.FieldRole: msgRoleRequired}, errs)

	errs, ok = gate.Check(1, form.Empty().With(form.FieldRole, "recruiter"))
	assert.False(t, ok)
	assert.Equal(t, msgRoleRequired, errs[form.FieldRole])

	errs, ok = gate.Check(1, form.Empty().With(form.FieldRole, form.RoleEmployer))
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestGatePasswordMismatch(t *testing.T) {
	gate := newTestGate(t)
	data := validAccount().With(form.FieldConfirmPassword, "Aa1aaaab")

	errs, ok := gate.Check(2, data)
	assert.False(t, ok)
	assert.Equal(t, map[string]string{form.FieldConfirmPassword: msgPasswordMismatch}, errs)
}

func TestGateAccountAcceptsValidRecord(t *testing.T) {
	gate := newTestGate(t)
	errs, ok := gate.Check(2, validAccount())
	assert.True(t, ok)
	assert.Nil(t, errs)
}

func TestGateReportsEveryViolatedField(t *testing.T) {
	gate := newTestGate(t)
	data := form.Empty().
		With(form.FieldEmail, "not-an-email").
		With(form.FieldPassword, "alllowercase")

	errs, ok := gate.Check(2, data)
	require.False(t, ok)
	assert.Len(t, errs, 5)
	assert.Equal(t, "First name is a required field", errs[form.FieldFirstName])
	assert.Equal(t, "Last name is a required field", errs[form.FieldLastName])
	assert.Contains(t, errs[form.FieldEmail], "valid email")
	assert.Contains(t, errs[form.FieldPassword], "uppercase letter")
	assert.Equal(t, msgConfirmRequired, errs[form.FieldConfirmPassword])
}

func TestGateContactStep(t *testing.T) {
	gate := newTestGate(t)

	errs, ok := gate.Check(3, form.Empty().With(form.FieldLinkedInURL, "nope"))
	require.False(t, ok)
	assert.Contains(t, errs, form.FieldPhone)
	assert.Contains(t, errs, form.FieldCity)
	assert.Contains(t, errs, form.FieldCountry)
	assert.Contains(t, errs, form.FieldLinkedInURL)

	valid := form.Empty().
		With(form.FieldPhone, "+44 20 7946 0958").
		With(form.FieldCity, "London").
		With(form.FieldCountry, "United Kingdom")
	errs, ok = gate.Check(3, valid)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestGateIgnoresFieldsOfOtherSteps(t *testing.T) {
	gate := newTestGate(t)
	// An invalid email must not block the role step.
	data := form.Empty().
		With(form.FieldRole, form.RoleCandidate).
		With(form.FieldEmail, "broken")

	_, ok := gate.Check(1, data)
	assert.True(t, ok)
}

func TestGateUngatedStepsAlwaysPass(t *testing.T) {
	gate := newTestGate(t)
	for _, step := range []int{4, 5, 6} {
		errs, ok := gate.Check(step, form.Empty())
		assert.True(t, ok, "step %d", step)
		assert.Nil(t, errs, "step %d", step)
	}
}

func TestFlattenUsesFirstPathSegment(t *testing.T) {
	schema := SchemaFunc(func(map[string]string) []Violation {
		return []Violation{
			{Path: []string{"address", "city"}, Message: "City is required"},
			{Path: []string{"address", "postcode"}, Message: "Postcode is required"},
			{Path: []string{"links[1]", "url"}, Message: "Link must be a URL"},
			{Message: "Something went wrong"},
		}
	})
	gate := NewGate(map[int]Schema{1: schema})

	errs, ok := gate.Check(1, form.Empty())
	assert.False(t, ok)
	assert.Equal(t, map[string]string{
		"address": "City is required",
		"links":   "Link must be a URL",
		"form":    "Something went wrong",
	}, errs)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, []string{"email"}, fieldPath("AccountStep.email"))
	assert.Equal(t, []string{"address", "city"}, fieldPath("ContactStep.address.city"))
	assert.Equal(t, []string{"email"}, fieldPath("email"))
}
