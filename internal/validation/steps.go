package validation

import "github.com/justsurfingit/jobboard/internal/form"

// RoleStep is the record slice checked on step 1.
type RoleStep struct {
	Role string `json:"role" validate:"required,oneof=candidate employer"`
}

// AccountStep is the record slice checked on step 2.
type AccountStep struct {
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=8,max=72,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ContactStep is the record slice checked on step 3.
type ContactStep struct {
	Phone       string `json:"phone" validate:"required,phone"`
	City        string `json:"city" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	LinkedInURL string `json:"linkedinUrl" validate:"omitempty,url,max=2048"`
}

const (
	msgRoleRequired     = "Please choose whether you are a candidate or an employer"
	msgPasswordMismatch = "Passwords do not match"
	msgConfirmRequired  = "Please confirm your password"
)

// DefaultSchemas returns the blocking schemas of the signup wizard, keyed by
// step number. Steps without an entry never block.
func DefaultSchemas(engine *Engine) map[int]Schema {
	return map[int]Schema{
		1: NewStructSchema[RoleStep](engine, map[string]string{
			form.FieldRole + ".required": msgRoleRequired,
			form.FieldRole + ".oneof":    msgRoleRequired,
		}),
		2: NewStructSchema[AccountStep](engine, map[string]string{
			form.FieldConfirmPassword + ".required": msgConfirmRequired,
			form.FieldConfirmPassword + ".eqfield":  msgPasswordMismatch,
		}),
		3: NewStructSchema[ContactStep](engine, nil),
	}
}
