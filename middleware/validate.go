package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the json field name, not the Go field name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidateStruct runs struct-tag validation and returns a per-field error
// map suitable for ValidationErrorResponse. Nil means the struct is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request body!"
		return errors
	}

	for _, fieldErr := range validationErrors {
		errors[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return errors
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fieldErr.Field())
	case "email":
		return "Invalid email!"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", fieldErr.Field(), strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "number", "numeric":
		return fmt.Sprintf("%s must be numeric!", fieldErr.Field())
	default:
		return fmt.Sprintf("%s is invalid!", fieldErr.Field())
	}
}
