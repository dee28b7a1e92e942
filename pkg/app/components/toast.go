package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
)

const DefaultToastDuration = 3 * time.Second

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastExpiredMsg hides the toast it was scheduled for.
type ToastExpiredMsg struct {
	id int
}

// Toast is a transient notification.
type Toast struct {
	Kind    ToastKind
	Title   string
	Message string
	id      int
	visible bool
}

// Show replaces the current toast and schedules its expiry.
func (t *Toast) Show(kind ToastKind, title, message string, d time.Duration) tea.Cmd {
	t.id++
	t.Kind = kind
	t.Title = title
	t.Message = message
	t.visible = true

	id := t.id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{id: id}
	})
}

func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(ToastExpiredMsg); ok && m.id == t.id {
		t.visible = false
	}
}

func (t *Toast) Hide() {
	t.visible = false
}

func (t *Toast) Visible() bool {
	return t.visible
}

func (t *Toast) View(theme *styles.Theme) string {
	if !t.visible {
		return ""
	}
	style := theme.StatusInfo
	switch t.Kind {
	case ToastSuccess:
		style = theme.StatusSuccess
	case ToastError:
		style = theme.StatusError
	}
	body := style.Render(t.Title)
	if t.Message != "" {
		body += "\n" + theme.Text.Render(t.Message)
	}
	return theme.Card.BorderForeground(style.GetForeground()).Render(body)
}
