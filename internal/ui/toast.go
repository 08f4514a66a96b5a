package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastLevel selects a toast's color and lifetime.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// Toast lifetimes.
const (
	ToastSuccessTTL = 3 * time.Second
	ToastErrorTTL   = 5 * time.Second
	maxToasts       = 4
)

// Toast is a transient notification shown above the command bar.
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

type toastTickMsg time.Time

func ttlFor(level ToastLevel) time.Duration {
	if level == ToastError {
		return ToastErrorTTL
	}
	return ToastSuccessTTL
}

// pushToast queues a notification and schedules its expiry.
func (m *Model) pushToast(level ToastLevel, message string) tea.Cmd {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	ttl := ttlFor(level)
	m.toasts = append(m.toasts, Toast{Level: level, Message: message, Expires: m.now().Add(ttl)})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Tick(ttl, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// expireToasts drops toasts whose time has passed.
func (m *Model) expireToasts() {
	now := m.now()
	kept := make([]Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, styles.ToastStyle(t.Level).Render(truncate(t.Message, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
