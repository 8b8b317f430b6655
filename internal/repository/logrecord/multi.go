package logrecord

import (
	"context"
	"errors"

	"vuidokan-site/internal/domain"
)

// Sink accepts both contact submissions and newsletter subscriptions
type Sink interface {
	domain.SubmissionRecorder
	domain.SubscriptionRecorder
}

// Fanout records into every sink and joins their errors
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Record(ctx context.Context, s *domain.ContactSubmission) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) RecordSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.RecordSubscription(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
