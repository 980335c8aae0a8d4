package usecase

import (
	"fmt"
	"sort"
	"strings"

	"library-catalog/pkg/utils"
)

// ValidationError carries every accumulated field error of a rejected form
// submission, so the handler can send the complete map back for redisplay
// instead of only the first failing field.
type ValidationError struct {
	Fields utils.FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(fields utils.FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) *ValidationError {
	fields := utils.NewFieldErrors()
	fields.Add(field, message)
	return newValidationError(fields)
}
