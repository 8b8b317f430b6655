package domain

import (
	"context"
	"time"

	"vuidokan-site/pkg/validation"
)

// Field-shape errors shared with the client-side validator
var (
	ErrMissingField         = validation.ErrMissingField
	ErrInvalidEmailShape    = validation.ErrInvalidEmailShape
	ErrInvalidPhoneShape    = validation.ErrInvalidPhoneShape
	ErrInvalidNameShape     = validation.ErrInvalidNameShape
	ErrInvalidMessageLength = validation.ErrInvalidMessageLength
)

// ContactRequest is the submission payload sent by the contact form.
// Validation tags are evaluated by the usecase, not by gin binding,
// so that the rejection order stays required -> email -> phone.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required_trimmed"`
	Email   string `json:"email" form:"email" validate:"required_trimmed,email_shape"`
	Phone   string `json:"phone" form:"phone" validate:"required_trimmed,vn_phone"`
	Service string `json:"service,omitempty" form:"service"`
	Message string `json:"message" form:"message" validate:"required_trimmed"`
}

// SubmissionResult is the body returned by POST /contact/submit
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactSubmission is an accepted request as handed to recorders
type ContactSubmission struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	ClientIP    string
	UserAgent   string
	SubmittedAt time.Time
}

// SubmissionMeta carries request details that are not part of the payload
type SubmissionMeta struct {
	ClientIP  string
	UserAgent string
}

// SubmissionRecorder keeps accepted submissions for later follow-up
type SubmissionRecorder interface {
	Record(ctx context.Context, submission *ContactSubmission) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the request authoritatively and records it.
	// Validation failures wrap one of the Err* sentinels.
	Submit(ctx context.Context, req *ContactRequest, meta SubmissionMeta) (*ContactSubmission, error)
}

// Messages returned by the submission endpoint
const (
	MsgContactAccepted      = "Cảm ơn bạn đã liên hệ! Chúng tôi sẽ phản hồi trong thời gian sớm nhất."
	MsgContactMissingFields = "Vui lòng điền đầy đủ thông tin bắt buộc."
	MsgContactInvalidEmail  = "Email không hợp lệ."
	MsgContactInvalidPhone  = "Số điện thoại không hợp lệ."
	MsgMalformedBody        = "Dữ liệu gửi lên không hợp lệ."
)
