package main

import (
	"fmt"
	"io"
	"sync"

	"vuidokan-site/pkg/contactform"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#2E7D32")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
	colorMuted   = lipgloss.Color("#8a8f98")
)

type theme struct {
	panel   lipgloss.Style
	toast   lipgloss.Style
	success lipgloss.Style
	error   lipgloss.Style
	info    lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles() theme {
	return theme{
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(0, 1),
		toast:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(0, 1),
		success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		error:   lipgloss.NewStyle().Foreground(colorError),
		info:    lipgloss.NewStyle().Foreground(colorInfo),
		label:   lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// terminalSink prints notifications as they are shown. A terminal has
// nothing to take down, so Hide only forgets the notification.
type terminalSink struct {
	out    io.Writer
	styles theme

	mu   sync.Mutex
	open map[*contactform.Notification]struct{}
}

func newTerminalSink(out io.Writer) *terminalSink {
	return &terminalSink{
		out:    out,
		styles: newStyles(),
		open:   make(map[*contactform.Notification]struct{}),
	}
}

func (s *terminalSink) Show(n *contactform.Notification) {
	s.mu.Lock()
	s.open[n] = struct{}{}
	s.mu.Unlock()

	fmt.Fprintln(s.out, s.render(n))
}

func (s *terminalSink) Hide(n *contactform.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, n)
}

// dismissAll stops pending auto-dismiss timers before the process exits
func (s *terminalSink) dismissAll() {
	s.mu.Lock()
	open := make([]*contactform.Notification, 0, len(s.open))
	for n := range s.open {
		open = append(open, n)
	}
	s.mu.Unlock()

	for _, n := range open {
		n.Dismiss()
	}
}

func (s *terminalSink) render(n *contactform.Notification) string {
	if n.Panel {
		return s.styles.panel.Render(s.styles.success.Render("✓ ") + n.Message)
	}

	switch n.Kind {
	case contactform.KindError:
		return s.styles.toast.BorderForeground(colorError).Render(s.styles.error.Render(n.Message))
	case contactform.KindSuccess:
		return s.styles.toast.BorderForeground(colorSuccess).Render(s.styles.success.Render(n.Message))
	default:
		return s.styles.toast.BorderForeground(colorInfo).Render(s.styles.info.Render(n.Message))
	}
}
