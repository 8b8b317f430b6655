package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrNetworkFailure  = errors.New("contact form: network failure")
	ErrServerRejection = errors.New("contact form: submission rejected")
)

// MsgSubmitFailed is shown when the server gives no message of its own
const MsgSubmitFailed = "Có lỗi xảy ra khi gửi thông tin. Vui lòng thử lại sau."

// SubmitPath is where the site accepts contact submissions
const SubmitPath = "/contact/submit"

const maxResponseBytes = 64 << 10

// Payload is the body sent to the submission endpoint. It is built once per
// submit attempt.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service,omitempty"`
	Message string `json:"message"`
}

// Result is the endpoint's verdict
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Transport sends one submission. Implementations never retry.
type Transport interface {
	Submit(ctx context.Context, payload Payload) (Result, error)
}

type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport posts to baseURL + SubmitPath. A nil client uses
// http.DefaultClient; the deadline comes from the context.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (t *HTTPTransport) Submit(ctx context.Context, payload Payload) (Result, error) {
	failed := Result{Success: false, Message: MsgSubmitFailed}

	body, err := json.Marshal(payload)
	if err != nil {
		return failed, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return failed, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return failed, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	var result Result
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failed, fmt.Errorf("%w: read response: %w", ErrNetworkFailure, err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		result = Result{}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && result.Success {
		return result, nil
	}

	if result.Message == "" {
		result.Message = MsgSubmitFailed
	}
	result.Success = false
	return result, fmt.Errorf("%w: status %d", ErrServerRejection, resp.StatusCode)
}
