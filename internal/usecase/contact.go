package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"vuidokan-site/internal/domain"
	"vuidokan-site/pkg/email"
	"vuidokan-site/pkg/logger"
	"vuidokan-site/pkg/security"
	"vuidokan-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// ContactMailer notifies staff about accepted submissions
type ContactMailer interface {
	IsConfigured() bool
	SendContactEmail(data email.ContactEmailData) error
}

type contactUsecase struct {
	recorder  domain.SubmissionRecorder
	mailer    ContactMailer
	validate  *validator.Validate
	secLog    *security.SecurityLogger
	sanitizer *bluemonday.Policy
	now       func() time.Time
	dispatch  func(func())
}

// NewContactUsecase creates a new contact usecase. mailer may be nil.
func NewContactUsecase(recorder domain.SubmissionRecorder, mailer ContactMailer, validate *validator.Validate, secLog *security.SecurityLogger) domain.ContactUsecase {
	return &contactUsecase{
		recorder:  recorder,
		mailer:    mailer,
		validate:  validate,
		secLog:    secLog,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
		dispatch:  func(f func()) { go f() },
	}
}

// Submit re-validates the request, the client-side checks being advisory only.
// Recording and mailing failures are logged; they never reject a valid request.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest, meta domain.SubmissionMeta) (*domain.ContactSubmission, error) {
	if err := uc.validate.Struct(req); err != nil {
		reason := validation.FirstReason(err)
		if reason == nil {
			return nil, fmt.Errorf("validate contact request: %w", err)
		}
		uc.secLog.LogValidationFailed(ctx, req.Email, meta.ClientIP, "contact", reason.Error(), validation.FormatValidationErrors(err))
		return nil, reason
	}

	submission := &domain.ContactSubmission{
		ID:          uuid.NewString(),
		Name:        uc.plainText(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       req.Phone,
		Service:     uc.plainText(req.Service),
		Message:     uc.plainText(req.Message),
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		SubmittedAt: uc.now().UTC(),
	}

	if err := uc.recorder.Record(ctx, submission); err != nil {
		logger.Log.ErrorContext(ctx, "Failed to record contact submission", "submission_id", submission.ID, "error", err)
	}
	uc.secLog.LogSubmissionAccepted(ctx, submission.ID, submission.Email, meta.ClientIP, "contact")

	if uc.mailer != nil && uc.mailer.IsConfigured() {
		data := email.ContactEmailData{
			SubmissionID: submission.ID,
			SenderName:   submission.Name,
			SenderEmail:  submission.Email,
			SenderPhone:  validation.FormatPhone(submission.Phone),
			Service:      submission.Service,
			Message:      submission.Message,
			SubmittedAt:  submission.SubmittedAt,
		}
		uc.dispatch(func() {
			if err := uc.mailer.SendContactEmail(data); err != nil {
				logger.Log.Error("Failed to send contact email", "submission_id", data.SubmissionID, "error", err)
			}
		})
	}

	return submission, nil
}

// plainText strips markup; the result is plain text again, not HTML
func (uc *contactUsecase) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(uc.sanitizer.Sanitize(s)))
}
