package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/services"
)

// Operation is a background operation shown while it runs.
type Operation struct {
	ID      uuid.UUID
	Kind    services.OperationKind
	Label   string
	Started time.Time
}

// ProgressTracker lists running operations with a spinner.
type ProgressTracker struct {
	ops     map[uuid.UUID]*Operation
	order   []uuid.UUID
	spinner spinner.Model
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &ProgressTracker{
		ops:     make(map[uuid.UUID]*Operation),
		spinner: sp,
		width:   width,
	}
}

// Start tracks an operation and returns the command that animates it.
func (p *ProgressTracker) Start(id uuid.UUID, kind services.OperationKind, label string) tea.Cmd {
	first := len(p.ops) == 0
	p.ops[id] = &Operation{ID: id, Kind: kind, Label: label, Started: time.Now()}
	p.order = append(p.order, id)
	if first {
		return p.spinner.Tick
	}
	return nil
}

// Update applies a finished operation or a spinner tick.
func (p *ProgressTracker) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case services.Result:
		p.remove(msg.ID)
	case spinner.TickMsg:
		if len(p.ops) == 0 {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (p *ProgressTracker) remove(id uuid.UUID) {
	if _, ok := p.ops[id]; !ok {
		return
	}
	delete(p.ops, id)
	for i, o := range p.order {
		if o == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *ProgressTracker) Clear() {
	p.ops = make(map[uuid.UUID]*Operation)
	p.order = nil
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.ops) > 0
}

func (p *ProgressTracker) View(theme *styles.Theme) string {
	if len(p.ops) == 0 {
		return ""
	}

	var b strings.Builder
	for _, id := range p.order {
		op := p.ops[id]
		line := fmt.Sprintf("%s %s", p.spinner.View(), op.Label)
		b.WriteString(theme.StatusInfo.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderProgressBar(theme *styles.Theme, current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return theme.ProgressBar.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(theme *styles.Theme, current, total, width int) string {
	return renderProgressBar(theme, current, total, width)
}
