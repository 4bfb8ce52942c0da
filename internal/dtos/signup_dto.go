package dtos

import "github.com/justsurfingit/jobboard/internal/wizard"

type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required,max=64"`
	Value string `json:"value" binding:"max=4096"`
}

// SignupResponse wraps the wizard view for failed actions so the client can
// re-render the step along with the error.
type SignupResponse struct {
	Error string      `json:"error"`
	State wizard.View `json:"state"`
}
