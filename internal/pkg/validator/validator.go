package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

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
	// Skill proficiency level
	validate.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		for _, l := range []string{"beginner", "intermediate", "advanced"} {
			if level == l {
				return true
			}
		}
		return false
	})

	// Skill kind / session type (teaching or learning)
	validate.RegisterValidation("skill_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		return kind == "teaching" || kind == "learning"
	})

	// Session date YYYY-MM-DD
	validate.RegisterValidation("session_date", func(fl validator.FieldLevel) bool {
		return dateRe.MatchString(fl.Field().String())
	})

	// Session time HH:MM (24h)
	validate.RegisterValidation("session_time", func(fl validator.FieldLevel) bool {
		return timeRe.MatchString(fl.Field().String())
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
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid id format"
		case "skill_level":
			errors[field] = "Invalid level. Must be: beginner, intermediate, or advanced"
		case "skill_kind":
			errors[field] = "Invalid type. Must be: teaching or learning"
		case "session_date":
			errors[field] = "Invalid date. Expected YYYY-MM-DD"
		case "session_time":
			errors[field] = "Invalid time. Expected HH:MM"
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
