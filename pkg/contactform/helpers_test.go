package contactform

import (
	"context"
	"sync"
	"time"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock records AfterFunc calls so tests can fire them on demand
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireAll() {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type recordingSink struct {
	mu     sync.Mutex
	shown  []*Notification
	hidden []*Notification
}

func (s *recordingSink) Show(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
}

func (s *recordingSink) Hide(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = append(s.hidden, n)
}

func (s *recordingSink) last() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.shown) == 0 {
		return nil
	}
	return s.shown[len(s.shown)-1]
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func newTestPresenter() (*Presenter, *recordingSink, *fakeClock) {
	sink := &recordingSink{}
	clock := &fakeClock{}
	p := NewPresenter(sink)
	p.afterFunc = clock.AfterFunc
	return p, sink, clock
}

type transportFunc func(ctx context.Context, payload Payload) (Result, error)

func (f transportFunc) Submit(ctx context.Context, payload Payload) (Result, error) {
	return f(ctx, payload)
}
