package contactform

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"vuidokan-site/pkg/validation"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Submit(ctx context.Context, payload Payload) (Result, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(Result), args.Error(1)
}

const accepted = "Cảm ơn bạn đã liên hệ! Chúng tôi sẽ phản hồi trong thời gian sớm nhất."

func fill(t *testing.T, c *Controller, values map[string]string) {
	t.Helper()
	for name, value := range values {
		require.NoError(t, c.Input(name, value))
	}
}

func validValues() map[string]string {
	return map[string]string{
		"name":    "An",
		"email":   "an@test.com",
		"phone":   "0987654321",
		"message": "Xin chào, tôi cần hỗ trợ",
	}
}

type transitionLog struct {
	mu  sync.Mutex
	got []string
}

func (l *transitionLog) observe(from, to State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = append(l.got, from.String()+">"+to.String())
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := new(MockTransport)
	transport.On("Submit", mock.Anything, Payload{
		Name:    "An",
		Email:   "an@test.com",
		Phone:   "0987654321",
		Message: "Xin chào, tôi cần hỗ trợ",
	}).Return(Result{Success: true, Message: accepted}, nil).Once()

	presenter, sink, _ := newTestPresenter()
	log := &transitionLog{}
	c := NewController(DefaultSchema, transport, presenter, WithTransitionObserver(log.observe))
	fill(t, c, validValues())

	result, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)

	for _, f := range c.Fields() {
		assert.Empty(t, f.Value, f.Name)
		assert.Empty(t, f.Error, f.Name)
	}

	n := sink.last()
	require.NotNil(t, n)
	assert.True(t, n.Panel)
	assert.Equal(t, accepted, n.Message)

	assert.Equal(t, StateIdle, c.State())
	assert.True(t, c.SubmitEnabled())
	want := []string{"idle>validating", "validating>submitting", "submitting>success", "success>idle"}
	if diff := cmp.Diff(want, log.got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
	transport.AssertExpectations(t)
}

func TestSubmitInvalidSendsNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := new(MockTransport)
	presenter, sink, _ := newTestPresenter()
	c := NewController(DefaultSchema, transport, presenter)

	values := validValues()
	values["phone"] = "123456"
	fill(t, c, values)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidForm)
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)

	phone, _ := c.Field("phone")
	assert.Equal(t, validation.MsgInvalidPhone, phone.Error)
	assert.Equal(t, "1234 56", phone.Value)

	name, _ := c.Field("name")
	assert.Empty(t, name.Error)
	assert.Equal(t, "An", name.Value)

	assert.Equal(t, MsgFixErrors, sink.last().Message)
	assert.Equal(t, KindError, sink.last().Kind)
	assert.Equal(t, StateIdle, c.State())
	assert.True(t, c.SubmitEnabled())
}

func TestSubmitOptionalFieldMayBeEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := new(MockTransport)
	transport.On("Submit", mock.Anything, mock.MatchedBy(func(p Payload) bool {
		return p.Service == ""
	})).Return(Result{Success: true, Message: accepted}, nil)

	presenter, _, _ := newTestPresenter()
	c := NewController(DefaultSchema, transport, presenter)
	fill(t, c, validValues())

	_, err := c.Submit(context.Background())
	assert.NoError(t, err)
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	tests := []struct {
		name        string
		result      Result
		err         error
		wantErr     error
		wantMessage string
	}{
		{
			name:        "Server rejection shows the server message",
			result:      Result{Success: false, Message: "Số điện thoại không hợp lệ."},
			err:         fmt.Errorf("%w: status 400", ErrServerRejection),
			wantErr:     ErrServerRejection,
			wantMessage: "Số điện thoại không hợp lệ.",
		},
		{
			name:        "Network failure shows the fallback",
			result:      Result{Success: false, Message: MsgSubmitFailed},
			err:         fmt.Errorf("%w: connection refused", ErrNetworkFailure),
			wantErr:     ErrNetworkFailure,
			wantMessage: MsgSubmitFailed,
		},
		{
			name:        "Success false without message",
			result:      Result{Success: false},
			wantErr:     ErrServerRejection,
			wantMessage: MsgSubmitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			transport := new(MockTransport)
			transport.On("Submit", mock.Anything, mock.Anything).Return(tt.result, tt.err).Once()

			presenter, sink, _ := newTestPresenter()
			log := &transitionLog{}
			c := NewController(DefaultSchema, transport, presenter, WithTransitionObserver(log.observe))
			fill(t, c, validValues())

			result, err := c.Submit(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)

			n := sink.last()
			assert.Equal(t, tt.wantMessage, n.Message)
			assert.Equal(t, KindError, n.Kind)
			assert.False(t, n.Panel)

			email, _ := c.Field("email")
			assert.Equal(t, "an@test.com", email.Value)
			phone, _ := c.Field("phone")
			assert.Equal(t, "0987 654 321", phone.Value)

			assert.True(t, c.SubmitEnabled())
			assert.Equal(t, StateIdle, c.State())
			assert.Contains(t, log.got, "submitting>failed")
		})
	}
}

func TestSubmitSingleInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	calls := 0
	transport := transportFunc(func(ctx context.Context, p Payload) (Result, error) {
		calls++
		<-release
		return Result{Success: true, Message: accepted}, nil
	})

	presenter, _, _ := newTestPresenter()
	c := NewController(DefaultSchema, transport, presenter)
	fill(t, c, validValues())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return c.State() == StateSubmitting }, time.Second, time.Millisecond)
	assert.False(t, c.SubmitEnabled())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, calls)
	assert.True(t, c.SubmitEnabled())
}

func TestSubmitTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := transportFunc(func(ctx context.Context, p Payload) (Result, error) {
		<-ctx.Done()
		return Result{Success: false, Message: MsgSubmitFailed}, fmt.Errorf("%w: %w", ErrNetworkFailure, ctx.Err())
	})

	presenter, sink, _ := newTestPresenter()
	c := NewController(DefaultSchema, transport, presenter, WithTimeout(20*time.Millisecond))
	fill(t, c, validValues())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, MsgSubmitFailed, sink.last().Message)
	assert.True(t, c.SubmitEnabled())
}

func TestFieldEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	presenter, _, _ := newTestPresenter()
	c := NewController(DefaultSchema, new(MockTransport), presenter)

	t.Run("Input does not validate a clean field", func(t *testing.T) {
		require.NoError(t, c.Input("email", "an@"))
		f, _ := c.Field("email")
		assert.Empty(t, f.Error)
	})

	t.Run("Blur marks the field", func(t *testing.T) {
		result, err := c.Blur("email")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		f, _ := c.Field("email")
		assert.Equal(t, validation.MsgInvalidEmail, f.Error)
	})

	t.Run("Input re-validates a field in error", func(t *testing.T) {
		require.NoError(t, c.Input("email", "an@test"))
		f, _ := c.Field("email")
		assert.Equal(t, validation.MsgInvalidEmail, f.Error)

		require.NoError(t, c.Input("email", "an@test.com"))
		f, _ = c.Field("email")
		assert.Empty(t, f.Error)
	})

	t.Run("Focus clears the error", func(t *testing.T) {
		_, err := c.Blur("name")
		require.NoError(t, err)
		f, _ := c.Field("name")
		assert.Equal(t, validation.MsgRequired, f.Error)

		require.NoError(t, c.Focus("name"))
		f, _ = c.Field("name")
		assert.Empty(t, f.Error)
	})

	t.Run("Phone is formatted while typing", func(t *testing.T) {
		require.NoError(t, c.Input("phone", "0987654"))
		f, _ := c.Field("phone")
		assert.Equal(t, "0987 654", f.Value)
	})

	t.Run("Unknown field", func(t *testing.T) {
		assert.ErrorIs(t, c.Input("fax", "1"), ErrUnknownField)
		_, err := c.Blur("fax")
		assert.ErrorIs(t, err, ErrUnknownField)
		assert.ErrorIs(t, c.Focus("fax"), ErrUnknownField)
	})
}
