package exceptions

import (
	"fhirloader-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatAllValidationErrors(err error) string {
	if err == nil {
		return constvars.ErrClientInvalidConfiguration
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return constvars.ErrDevInvalidInput
	}

	var errors []string
	for _, fieldErr := range validationErrors {
		errors = append(errors, formatValidationError(fieldErr))
	}
	return strings.Join(errors, ", ")
}

func formatValidationError(fieldErr validator.FieldError) string {
	fieldName := strings.ToLower(fieldErr.Field())
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return fieldName + " " + customMessage
}
