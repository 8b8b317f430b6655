package logrecord

import (
	"context"
	"log/slog"

	"vuidokan-site/internal/domain"
	"vuidokan-site/pkg/security"
)

// Recorder writes accepted submissions to the application log. It is the
// default sink when no database is configured.
type Recorder struct {
	log *slog.Logger
}

func NewRecorder(log *slog.Logger) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) Record(ctx context.Context, s *domain.ContactSubmission) error {
	r.log.InfoContext(ctx, "Contact form submission",
		"submission_id", s.ID,
		"name", s.Name,
		"email", security.MaskEmail(s.Email),
		"phone", security.MaskPhone(s.Phone),
		"service", s.Service,
		"message_length", len([]rune(s.Message)),
		"submitted_at", s.SubmittedAt,
	)
	return nil
}

func (r *Recorder) RecordSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error {
	r.log.InfoContext(ctx, "Newsletter subscription",
		"subscription_id", sub.ID,
		"email", security.MaskEmail(sub.Email),
		"subscribed_at", sub.SubscribedAt,
	)
	return nil
}
