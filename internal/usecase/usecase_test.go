package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vuidokan-site/internal/domain"
	"vuidokan-site/internal/usecase"
	"vuidokan-site/pkg/email"
	"vuidokan-site/pkg/security"
	"vuidokan-site/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock Recorders
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, s *domain.ContactSubmission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockRecorder) RecordSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendContactEmail(data email.ContactEmailData) error {
	return m.Called(data).Error(0)
}

func nopSecurityLogger() *security.SecurityLogger {
	return security.NewSecurityLogger(zap.NewNop(), "vuidokan-site", "test")
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "An",
		Email:   "an@test.com",
		Phone:   "0987654321",
		Message: "Xin chào, tôi cần hỗ trợ",
	}
}

func TestContactSubmitValidation(t *testing.T) {
	recorder := new(MockRecorder)
	uc := usecase.NewContactUsecase(recorder, nil, validation.New(), nopSecurityLogger())
	ctx := context.Background()

	t.Run("Should reject missing fields before shape errors", func(t *testing.T) {
		req := validRequest()
		req.Message = "   "
		req.Email = "not-an-email"
		_, err := uc.Submit(ctx, req, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("Should reject malformed email", func(t *testing.T) {
		req := validRequest()
		req.Email = "an@testcom"
		_, err := uc.Submit(ctx, req, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidEmailShape)
	})

	t.Run("Should reject phone with prefix 01", func(t *testing.T) {
		req := validRequest()
		req.Phone = "0123456789"
		_, err := uc.Submit(ctx, req, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidPhoneShape)
	})

	t.Run("Should treat formatted phone as invalid on the server", func(t *testing.T) {
		req := validRequest()
		req.Phone = "0987 654 321"
		_, err := uc.Submit(ctx, req, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidPhoneShape)
	})

	t.Run("Should not validate name shape or message length", func(t *testing.T) {
		req := validRequest()
		req.Name = "A1"
		req.Message = "Hi"
		recorder.On("Record", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil).Once()
		_, err := uc.Submit(ctx, req, domain.SubmissionMeta{})
		assert.NoError(t, err)
	})

	recorder.AssertExpectations(t)
}

func TestContactSubmitRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("Should record a sanitised submission", func(t *testing.T) {
		recorder := new(MockRecorder)
		uc := usecase.NewContactUsecase(recorder, nil, validation.New(), nopSecurityLogger())

		req := validRequest()
		req.Service = "  Bóng đá <b>trẻ em</b> "
		req.Message = "Xin chào <script>alert(1)</script>, tôi cần hỗ trợ & tư vấn"

		recorder.On("Record", ctx, mock.AnythingOfType("*domain.ContactSubmission")).Return(nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.ContactSubmission)
			assert.NotEmpty(t, s.ID)
			assert.Equal(t, "Bóng đá trẻ em", s.Service)
			assert.Equal(t, "Xin chào , tôi cần hỗ trợ & tư vấn", s.Message)
			assert.Equal(t, "10.0.0.1", s.ClientIP)
			assert.False(t, s.SubmittedAt.IsZero())
		})

		s, err := uc.Submit(ctx, req, domain.SubmissionMeta{ClientIP: "10.0.0.1", UserAgent: "test"})
		require.NoError(t, err)
		assert.Equal(t, "test", s.UserAgent)
		recorder.AssertExpectations(t)
	})

	t.Run("Should accept even when the recorder fails", func(t *testing.T) {
		recorder := new(MockRecorder)
		recorder.On("Record", ctx, mock.Anything).Return(errors.New("db down"))
		uc := usecase.NewContactUsecase(recorder, nil, validation.New(), nopSecurityLogger())

		_, err := uc.Submit(ctx, validRequest(), domain.SubmissionMeta{})
		assert.NoError(t, err)
	})

	t.Run("Should mail staff when configured", func(t *testing.T) {
		recorder := new(MockRecorder)
		recorder.On("Record", ctx, mock.Anything).Return(nil)

		sent := make(chan email.ContactEmailData, 1)
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendContactEmail", mock.Anything).Return(errors.New("smtp refused")).Run(func(args mock.Arguments) {
			sent <- args.Get(0).(email.ContactEmailData)
		})

		uc := usecase.NewContactUsecase(recorder, mailer, validation.New(), nopSecurityLogger())
		s, err := uc.Submit(ctx, validRequest(), domain.SubmissionMeta{})
		require.NoError(t, err)

		select {
		case data := <-sent:
			assert.Equal(t, s.ID, data.SubmissionID)
			assert.Equal(t, "0987 654 321", data.SenderPhone)
		case <-time.After(2 * time.Second):
			t.Fatal("contact email was not sent")
		}
	})

	t.Run("Should skip mailing when not configured", func(t *testing.T) {
		recorder := new(MockRecorder)
		recorder.On("Record", ctx, mock.Anything).Return(nil)
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(false)

		uc := usecase.NewContactUsecase(recorder, mailer, validation.New(), nopSecurityLogger())
		_, err := uc.Submit(ctx, validRequest(), domain.SubmissionMeta{})
		require.NoError(t, err)
		mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything)
	})
}

func TestNewsletterSubscribe(t *testing.T) {
	ctx := context.Background()
	recorder := new(MockRecorder)
	uc := usecase.NewNewsletterUsecase(recorder, validation.New(), nopSecurityLogger())

	t.Run("Should reject invalid email", func(t *testing.T) {
		_, err := uc.Subscribe(ctx, &domain.NewsletterRequest{Email: "nope"}, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidEmailShape)

		_, err = uc.Subscribe(ctx, &domain.NewsletterRequest{Email: "  "}, domain.SubmissionMeta{})
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("Should normalise and record", func(t *testing.T) {
		recorder.On("RecordSubscription", ctx, mock.AnythingOfType("*domain.NewsletterSubscription")).Return(nil).Run(func(args mock.Arguments) {
			assert.Equal(t, "an@test.com", args.Get(1).(*domain.NewsletterSubscription).Email)
		}).Once()

		sub, err := uc.Subscribe(ctx, &domain.NewsletterRequest{Email: " An@Test.com "}, domain.SubmissionMeta{})
		require.NoError(t, err)
		assert.NotEmpty(t, sub.ID)
		recorder.AssertExpectations(t)
	})
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, usecase.ReadingTime("   "))
	assert.Equal(t, 1, usecase.ReadingTime("một"))
	assert.Equal(t, 1, usecase.ReadingTime(strings.Repeat("từ ", 200)))
	assert.Equal(t, 2, usecase.ReadingTime(strings.Repeat("từ ", 201)))
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"redis":    func(context.Context) error { return nil },
		"database": func(context.Context) error { return errors.New("unreachable") },
	})

	status, healthy := uc.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "ok", status["redis"])
	assert.Equal(t, "unreachable", status["database"])

	status, healthy = usecase.NewHealthUsecase(nil).Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, "ok", status["status"])
}
