package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	"candidate_id":         "Candidate ID",
	"job_id":               "Job ID",
	"skills":               "Skills",
	"required_skills":      "Required skills",
	"experience_years":     "Years of experience",
	"min_experience_years": "Minimum experience",
	"projects":             "Projects",
	"embedding":            "Embedding",
	"vector":               "Vector",
	"subject_type":         "Subject type",
	"subject_id":           "Subject ID",
	"model":                "Model",
	"status":               "Job status",
	"top_n":                "Top N",
	"title":                "Title",
	"name":                 "Name",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min", "gte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max", "lte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "len":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must have exactly %s values", label, param)
		}
		return fmt.Sprintf("%s: must be exactly %s characters", label, param)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "finite":
		return fmt.Sprintf("%s: must contain only finite numbers", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel strips any slice index ("embedding[3]") before the lookup.
func getFieldLabel(field string) string {
	base := field
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	if label, ok := FieldLabels[base]; ok {
		if base != field {
			return label + field[len(base):]
		}
		return label
	}
	return field
}
