// Package contactform drives a contact form from input to submission:
// per-field validation, a single in-flight submit and notifications.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"vuidokan-site/pkg/validation"
)

var (
	ErrSubmissionInFlight = errors.New("contact form: submission already in flight")
	ErrInvalidForm        = errors.New("contact form: invalid fields")
	ErrUnknownField       = errors.New("contact form: unknown field")
)

// MsgFixErrors is shown when a submit attempt fails local validation
const MsgFixErrors = "Vui lòng kiểm tra và sửa các lỗi trong form"

// DefaultTimeout bounds one submission attempt
const DefaultTimeout = 10 * time.Second

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FieldSpec declares one input of the form
type FieldSpec struct {
	Name     string
	Kind     validation.FieldKind
	Required bool
}

// DefaultSchema is the site's contact form
var DefaultSchema = []FieldSpec{
	{Name: "name", Kind: validation.KindName, Required: true},
	{Name: "email", Kind: validation.KindEmail, Required: true},
	{Name: "phone", Kind: validation.KindPhone, Required: true},
	{Name: "service", Kind: validation.KindText},
	{Name: "message", Kind: validation.KindMessage, Required: true},
}

type Option func(*Controller)

// WithTimeout overrides DefaultTimeout; non-positive values are ignored
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransitionObserver is called after every state change, outside the
// controller's lock
func WithTransitionObserver(fn func(from, to State)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

type transition struct {
	from, to State
}

// Controller owns one form instance. It is safe for concurrent use, but
// only one submission runs at a time.
type Controller struct {
	mu       sync.Mutex
	fields   []validation.FormField
	index    map[string]int
	state    State
	inFlight bool
	pending  []transition

	transport Transport
	presenter *Presenter
	timeout   time.Duration
	observer  func(from, to State)
}

func NewController(schema []FieldSpec, transport Transport, presenter *Presenter, opts ...Option) *Controller {
	c := &Controller{
		fields:    make([]validation.FormField, len(schema)),
		index:     make(map[string]int, len(schema)),
		transport: transport,
		presenter: presenter,
		timeout:   DefaultTimeout,
	}
	for i, spec := range schema {
		c.fields[i] = validation.FormField{Name: spec.Name, Kind: spec.Kind, Required: spec.Required}
		c.index[spec.Name] = i
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitEnabled is false while a submission is in flight
func (c *Controller) SubmitEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.inFlight
}

func (c *Controller) Field(name string) (validation.FormField, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[name]
	if !ok {
		return validation.FormField{}, false
	}
	return c.fields[i], true
}

// Fields returns a copy of every field in schema order
func (c *Controller) Fields() []validation.FormField {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]validation.FormField, len(c.fields))
	copy(out, c.fields)
	return out
}

// Input stores a new value. Phone values are reformatted as typed. A field
// already showing an error is re-validated straight away.
func (c *Controller) Input(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.field(name)
	if err != nil {
		return err
	}
	if f.Kind == validation.KindPhone {
		value = validation.FormatPhone(value)
	}
	f.Value = value
	if f.Error != "" {
		f.Error = validation.Validate(*f).Message
	}
	return nil
}

// Blur validates a single field and updates its error
func (c *Controller) Blur(name string) (validation.ValidationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.field(name)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	result := validation.Validate(*f)
	f.Error = result.Message
	return result, nil
}

// Focus clears the field's error while the user edits it
func (c *Controller) Focus(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.field(name)
	if err != nil {
		return err
	}
	f.Error = ""
	return nil
}

// Submit validates every field and, when all pass, sends the payload once.
// A call made while another is running returns ErrSubmissionInFlight.
// Local validation failures return ErrInvalidForm without any request.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	c.inFlight = true
	c.transition(StateValidating)

	if invalid := c.validateAll(); len(invalid) > 0 {
		c.transition(StateIdle)
		c.inFlight = false
		c.unlockAndNotify()

		c.presenter.Show(MsgFixErrors, KindError)
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(invalid, ", "))
	}

	c.transition(StateSubmitting)
	payload := c.payload()
	c.unlockAndNotify()

	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	result, err := c.transport.Submit(sendCtx, payload)
	cancel()

	if err == nil && !result.Success {
		err = ErrServerRejection
	}

	c.mu.Lock()
	if err != nil {
		c.transition(StateFailed)
	} else {
		c.transition(StateSuccess)
		c.reset()
	}
	c.transition(StateIdle)
	c.inFlight = false
	c.unlockAndNotify()

	if err != nil {
		message := result.Message
		if message == "" {
			message = MsgSubmitFailed
		}
		c.presenter.Show(message, KindError)
		return Result{Success: false, Message: message}, err
	}

	c.presenter.ShowSuccessPanel(result.Message)
	return result, nil
}

func (c *Controller) field(name string) (*validation.FormField, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return &c.fields[i], nil
}

// validateAll marks every field and returns the names that failed
func (c *Controller) validateAll() []string {
	var invalid []string
	for i := range c.fields {
		result := validation.Validate(c.fields[i])
		c.fields[i].Error = result.Message
		if !result.Valid {
			invalid = append(invalid, c.fields[i].Name)
		}
	}
	return invalid
}

// payload sends the phone without the display grouping
func (c *Controller) payload() Payload {
	value := func(name string) string {
		if i, ok := c.index[name]; ok {
			return strings.TrimSpace(c.fields[i].Value)
		}
		return ""
	}
	return Payload{
		Name:    value("name"),
		Email:   value("email"),
		Phone:   validation.NormalizePhone(value("phone")),
		Service: value("service"),
		Message: value("message"),
	}
}

func (c *Controller) reset() {
	for i := range c.fields {
		c.fields[i].Value = ""
		c.fields[i].Error = ""
	}
}

func (c *Controller) transition(to State) {
	c.pending = append(c.pending, transition{from: c.state, to: to})
	c.state = to
}

func (c *Controller) unlockAndNotify() {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if c.observer == nil {
		return
	}
	for _, t := range pending {
		c.observer(t.from, t.to)
	}
}
