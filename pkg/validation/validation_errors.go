package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly Vietnamese labels
var FieldLabels = map[string]string{
	"Name":    "Họ tên",
	"Email":   "Email",
	"Phone":   "Số điện thoại",
	"Service": "Dịch vụ quan tâm",
	"Message": "Tin nhắn",
}

// tagReasons maps validator tags onto the field-shape sentinels
var tagReasons = map[string]error{
	"required":         ErrMissingField,
	"required_trimmed": ErrMissingField,
	"email_shape":      ErrInvalidEmailShape,
	"vn_phone":         ErrInvalidPhoneShape,
	"person_name":      ErrInvalidNameShape,
	"min":              ErrInvalidMessageLength,
	"max":              ErrInvalidMessageLength,
}

// reasonPrecedence is the order in which a request is rejected when several
// fields fail at once
var reasonPrecedence = []error{
	ErrMissingField,
	ErrInvalidEmailShape,
	ErrInvalidPhoneShape,
	ErrInvalidNameShape,
	ErrInvalidMessageLength,
}

// FirstReason returns the highest-precedence sentinel among the failures in
// err, or nil when err is not a validator.ValidationErrors.
func FirstReason(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	found := make(map[error]validator.FieldError, len(validationErrors))
	for _, e := range validationErrors {
		reason, ok := tagReasons[e.Tag()]
		if !ok {
			continue
		}
		if _, seen := found[reason]; !seen {
			found[reason] = e
		}
	}

	for _, reason := range reasonPrecedence {
		if e, ok := found[reason]; ok {
			return fmt.Errorf("%w: %s", reason, e.Field())
		}
	}
	return nil
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "required_trimmed":
		return fmt.Sprintf("%s: %s", label, MsgRequired)

	case "email_shape":
		return fmt.Sprintf("%s: %s", label, MsgInvalidEmail)

	case "vn_phone":
		return fmt.Sprintf("%s: %s", label, MsgInvalidPhone)

	case "person_name":
		return fmt.Sprintf("%s: %s", label, MsgNameCharacters)

	case "min":
		return fmt.Sprintf("%s: Tối thiểu %s ký tự", label, param)

	case "max":
		return fmt.Sprintf("%s: Tối đa %s ký tự", label, param)

	default:
		return fmt.Sprintf("%s: Không hợp lệ (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
