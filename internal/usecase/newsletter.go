package usecase

import (
	"context"
	"strings"
	"time"

	"vuidokan-site/internal/domain"
	"vuidokan-site/pkg/logger"
	"vuidokan-site/pkg/security"
	"vuidokan-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type newsletterUsecase struct {
	recorder domain.SubscriptionRecorder
	validate *validator.Validate
	secLog   *security.SecurityLogger
	now      func() time.Time
}

func NewNewsletterUsecase(recorder domain.SubscriptionRecorder, validate *validator.Validate, secLog *security.SecurityLogger) domain.NewsletterUsecase {
	return &newsletterUsecase{
		recorder: recorder,
		validate: validate,
		secLog:   secLog,
		now:      time.Now,
	}
}

func (uc *newsletterUsecase) Subscribe(ctx context.Context, req *domain.NewsletterRequest, meta domain.SubmissionMeta) (*domain.NewsletterSubscription, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := uc.validate.Struct(req); err != nil {
		reason := validation.FirstReason(err)
		if reason == nil {
			return nil, err
		}
		uc.secLog.LogValidationFailed(ctx, req.Email, meta.ClientIP, "newsletter", reason.Error(), validation.FormatValidationErrors(err))
		return nil, reason
	}

	sub := &domain.NewsletterSubscription{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		ClientIP:     meta.ClientIP,
		SubscribedAt: uc.now().UTC(),
	}

	if err := uc.recorder.RecordSubscription(ctx, sub); err != nil {
		logger.Log.ErrorContext(ctx, "Failed to record newsletter subscription", "subscription_id", sub.ID, "error", err)
	}
	uc.secLog.LogSubmissionAccepted(ctx, sub.ID, sub.Email, meta.ClientIP, "newsletter")

	return sub, nil
}
