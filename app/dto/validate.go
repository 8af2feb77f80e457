package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and reports the first offending field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "email":
			return fmt.Errorf("%s must be a valid email address", field)
		case "oneof":
			return fmt.Errorf("%s must be one of %s", field, e.Param())
		case "min":
			return fmt.Errorf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Errorf("%s is invalid", field)
	}
	return err
}
