package contactform

import (
	"sync"
	"time"
)

// NotificationKind selects how a notification is styled
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Display durations before a notification hides itself
const (
	ToastDuration        = 5 * time.Second
	SuccessPanelDuration = 8 * time.Second
)

// Sink renders notifications. Hide is called exactly once per shown
// notification, either on expiry or on Dismiss.
type Sink interface {
	Show(n *Notification)
	Hide(n *Notification)
}

type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Notification is one toast or the success panel
type Notification struct {
	Message string
	Kind    NotificationKind
	Panel   bool
	TTL     time.Duration

	sink  Sink
	once  sync.Once
	mu    sync.Mutex
	timer timer
	done  bool
}

// Dismiss hides the notification now and cancels its pending auto-dismiss
func (n *Notification) Dismiss() {
	n.once.Do(func() {
		n.mu.Lock()
		t := n.timer
		n.done = true
		n.mu.Unlock()

		if t != nil {
			t.Stop()
		}
		n.sink.Hide(n)
	})
}

// Dismissed reports whether the notification has been hidden
func (n *Notification) Dismissed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.done
}

// Presenter shows transient notifications. Notifications are independent;
// showing a new one never hides an older one.
type Presenter struct {
	sink      Sink
	afterFunc afterFunc
}

func NewPresenter(sink Sink) *Presenter {
	return &Presenter{sink: sink, afterFunc: realAfterFunc}
}

// Show displays a toast that hides itself after ToastDuration
func (p *Presenter) Show(message string, kind NotificationKind) *Notification {
	return p.show(&Notification{Message: message, Kind: kind, TTL: ToastDuration})
}

// ShowSuccessPanel displays the inline success panel for SuccessPanelDuration
func (p *Presenter) ShowSuccessPanel(message string) *Notification {
	return p.show(&Notification{Message: message, Kind: KindSuccess, Panel: true, TTL: SuccessPanelDuration})
}

func (p *Presenter) show(n *Notification) *Notification {
	n.sink = p.sink
	p.sink.Show(n)

	t := p.afterFunc(n.TTL, n.Dismiss)
	n.mu.Lock()
	n.timer = t
	n.mu.Unlock()

	return n
}
