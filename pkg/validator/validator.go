package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface so request DTOs are checked against their validate tags on Bind.
type CustomValidator struct {
	v *validator.Validate
}

// New returns a ready-to-use validator for echo's e.Validator
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct's validate tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
