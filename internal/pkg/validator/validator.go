package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"student", "admin"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Curriculum validation
	validate.RegisterValidation("curriculum", func(fl validator.FieldLevel) bool {
		curriculum := fl.Field().String()
		validCurricula := []string{"CBC", "8-4-4", "TVET", ""}
		for _, c := range validCurricula {
			if curriculum == c {
				return true
			}
		}
		return false
	})

	// Education level validation
	validate.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		validLevels := []string{
			"Baby Class", "Lower Primary", "Upper Primary",
			"Junior Secondary", "Senior Secondary", "Campus", "",
		}
		for _, l := range validLevels {
			if level == l {
				return true
			}
		}
		return false
	})

	// Request kind validation (chat request types)
	validate.RegisterValidation("request_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		validKinds := []string{"question", "exam", "combined", ""}
		for _, k := range validKinds {
			if kind == k {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "role":
			errors[field] = "Invalid role. Must be: student or admin"
		case "curriculum":
			errors[field] = "Invalid curriculum. Must be: CBC, 8-4-4, or TVET"
		case "education_level":
			errors[field] = "Invalid education level"
		case "request_kind":
			errors[field] = "Invalid request kind. Must be: question, exam, or combined"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
