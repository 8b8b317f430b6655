package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local@domain.tld: no whitespace, a single @, at least one dot after it
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Vietnamese mobile: 10 digits starting with 03, 05, 07, 08 or 09
	phoneRegex = regexp.MustCompile(`^0[35789][0-9]{8}$`)

	// Basic Latin plus the Latin-1/Latin Extended/Vietnamese block, and whitespace
	nameRegex = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{1EF9}\s]+$`)

	whitespaceRegex = regexp.MustCompile(`\s`)
)

const (
	MinNameLength    = 2
	MinMessageLength = 10
	MaxMessageLength = 1000
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("required_trimmed", RequiredTrimmed)
	_ = v.RegisterValidation("email_shape", EmailShape)
	_ = v.RegisterValidation("vn_phone", VNPhone)
	_ = v.RegisterValidation("person_name", PersonName)
}

// New returns a validator with the site's custom tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RequiredTrimmed rejects empty and whitespace-only strings
func RequiredTrimmed(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// EmailShape checks the raw value against the local@domain.tld shape
func EmailShape(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// VNPhone matches the raw value exactly; no whitespace stripping is done here
func VNPhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

// PersonName validates that a string contains only letters and spaces
func PersonName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required_trimmed if needed
	}
	return utf8.RuneCountInString(strings.TrimSpace(val)) >= MinNameLength && nameRegex.MatchString(val)
}

func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

func IsPhone(value string) bool {
	return phoneRegex.MatchString(value)
}

// NormalizePhone removes every whitespace character
func NormalizePhone(value string) string {
	return whitespaceRegex.ReplaceAllString(value, "")
}

// FormatPhone keeps at most 10 digits and groups them as 0xxx xxx xxx
func FormatPhone(value string) string {
	digits := make([]byte, 0, 10)
	for i := 0; i < len(value) && len(digits) < 10; i++ {
		if value[i] >= '0' && value[i] <= '9' {
			digits = append(digits, value[i])
		}
	}

	switch n := len(digits); {
	case n > 7:
		return string(digits[:4]) + " " + string(digits[4:7]) + " " + string(digits[7:])
	case n > 4:
		return string(digits[:4]) + " " + string(digits[4:])
	default:
		return string(digits)
	}
}
