package postgres

import (
	"context"
	"fmt"

	"vuidokan-site/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema applied on startup when DATABASE_URL is set
const Schema = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	phone        TEXT NOT NULL,
	service      TEXT,
	message      TEXT NOT NULL,
	client_ip    TEXT,
	user_agent   TEXT,
	submitted_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	client_ip     TEXT,
	subscribed_at TIMESTAMPTZ NOT NULL
);
`

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository records contact requests and newsletter
// subscriptions for staff follow-up
func NewSubmissionRepository(db *pgxpool.Pool) *submissionRepo {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate submission tables: %w", err)
	}
	return nil
}

func (r *submissionRepo) Record(ctx context.Context, s *domain.ContactSubmission) error {
	query := `
		INSERT INTO contact_submissions
			(id, name, email, phone, service, message, client_ip, user_agent, submitted_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Email, s.Phone, s.Service, s.Message, s.ClientIP, s.UserAgent, s.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

// RecordSubscription ignores repeated subscriptions of the same address
func (r *submissionRepo) RecordSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error {
	query := `
		INSERT INTO newsletter_subscriptions (id, email, client_ip, subscribed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, sub.ID, sub.Email, sub.ClientIP, sub.SubscribedAt); err != nil {
		return fmt.Errorf("insert newsletter subscription: %w", err)
	}
	return nil
}
