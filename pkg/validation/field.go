package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrMissingField         = errors.New("required field missing")
	ErrInvalidEmailShape    = errors.New("invalid email shape")
	ErrInvalidPhoneShape    = errors.New("invalid phone shape")
	ErrInvalidNameShape     = errors.New("invalid name shape")
	ErrInvalidMessageLength = errors.New("invalid message length")
)

// Messages shown next to a field
const (
	MsgRequired        = "Trường này là bắt buộc"
	MsgInvalidEmail    = "Email không hợp lệ"
	MsgInvalidPhone    = "Số điện thoại không hợp lệ (10 số, bắt đầu bằng 03/05/07/08/09)"
	MsgNameTooShort    = "Họ tên phải có ít nhất 2 ký tự"
	MsgNameCharacters  = "Họ tên chỉ được chứa chữ cái và khoảng trắng"
	MsgMessageTooShort = "Tin nhắn phải có ít nhất 10 ký tự"
	MsgMessageTooLong  = "Tin nhắn không được vượt quá 1000 ký tự"
)

// FieldKind selects the rule set applied to a field
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindName    FieldKind = "name"
	KindEmail   FieldKind = "email"
	KindPhone   FieldKind = "phone"
	KindMessage FieldKind = "message"
)

// FormField is one input of a form. Error holds the message currently
// displayed for the field, empty when none.
type FormField struct {
	Name     string
	Value    string
	Kind     FieldKind
	Required bool
	Error    string
}

// ValidationResult is the verdict for a single field. Reason wraps one of
// the Err* sentinels when the field is invalid.
type ValidationResult struct {
	Valid   bool
	Message string
	Reason  error
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason error, message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message, Reason: reason}
}

// Validate applies the field's rules in precedence order; the first failing
// rule wins. Empty optional fields are always valid.
func Validate(field FormField) ValidationResult {
	trimmed := strings.TrimSpace(field.Value)
	if trimmed == "" {
		if field.Required {
			return invalid(ErrMissingField, MsgRequired)
		}
		return valid()
	}

	switch field.Kind {
	case KindEmail:
		if !IsEmail(field.Value) {
			return invalid(ErrInvalidEmailShape, MsgInvalidEmail)
		}
	case KindPhone:
		if !IsPhone(NormalizePhone(field.Value)) {
			return invalid(ErrInvalidPhoneShape, MsgInvalidPhone)
		}
	case KindName:
		if utf8.RuneCountInString(trimmed) < MinNameLength {
			return invalid(ErrInvalidNameShape, MsgNameTooShort)
		}
		if !nameRegex.MatchString(field.Value) {
			return invalid(ErrInvalidNameShape, MsgNameCharacters)
		}
	case KindMessage:
		n := utf8.RuneCountInString(trimmed)
		if n < MinMessageLength {
			return invalid(ErrInvalidMessageLength, MsgMessageTooShort)
		}
		if n > MaxMessageLength {
			return invalid(ErrInvalidMessageLength, MsgMessageTooLong)
		}
	}

	return valid()
}
