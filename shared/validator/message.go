package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"datetime": "{field} must match the format {param}",
	"oneof":    "{field} must be one of {param}",
	"role":     "{field} must be a known staff role",

	"gt":  "{field} must be greater than {param}",
	"gte": "{field} must be greater than or equal to {param}",
	"lte": "{field} must be less than or equal to {param}",
	"min": "{field} must be greater than or equal to {param}",
	"max": "{field} must be less than or equal to {param}",

	"eqfield": "{field} must match {param}",
	"nefield": "{field} must differ from {param}",

	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first field error that has a template. Other errors pass through unchanged.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
