package domain

import (
	"context"
	"time"
)

type NewsletterRequest struct {
	Email string `json:"email" form:"email" validate:"required_trimmed,email_shape"`
}

type NewsletterSubscription struct {
	ID           string
	Email        string
	ClientIP     string
	SubscribedAt time.Time
}

type SubscriptionRecorder interface {
	RecordSubscription(ctx context.Context, sub *NewsletterSubscription) error
}

type NewsletterUsecase interface {
	Subscribe(ctx context.Context, req *NewsletterRequest, meta SubmissionMeta) (*NewsletterSubscription, error)
}

const (
	MsgNewsletterAccepted     = "Đăng ký thành công! Cảm ơn bạn đã quan tâm đến VUIDOKAN."
	MsgNewsletterInvalidEmail = "Vui lòng nhập địa chỉ email hợp lệ."
)
