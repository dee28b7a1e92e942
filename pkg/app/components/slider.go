package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
)

// SlideTickMsg advances a slider. Ticks from an older schedule are ignored.
type SlideTickMsg struct {
	gen int
}

// Slider is the featured carousel. It advances on its own every interval
// and stops while the pointer hovers over it.
type Slider struct {
	Items    []*data.Entry
	Width    int
	interval time.Duration
	index    int
	hovered  bool
	gen      int
	dots     paginator.Model
}

func NewSlider(items []*data.Entry, interval time.Duration) *Slider {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.SetTotalPages(len(items))
	return &Slider{
		Items:    items,
		Width:    80,
		interval: interval,
		dots:     dots,
	}
}

func (s *Slider) Init() tea.Cmd {
	return s.schedule()
}

func (s *Slider) schedule() tea.Cmd {
	if s.interval <= 0 || len(s.Items) < 2 || s.hovered {
		return nil
	}
	gen := s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return SlideTickMsg{gen: gen}
	})
}

// restart invalidates the pending tick and schedules a fresh one.
func (s *Slider) restart() tea.Cmd {
	s.gen++
	return s.schedule()
}

func (s *Slider) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(SlideTickMsg)
	if !ok || tick.gen != s.gen || s.hovered {
		return nil
	}
	s.move(s.index + 1)
	return s.schedule()
}

func (s *Slider) move(i int) {
	n := len(s.Items)
	if n == 0 {
		return
	}
	s.index = ((i % n) + n) % n
	s.dots.Page = s.index
}

func (s *Slider) Next() tea.Cmd {
	s.move(s.index + 1)
	return s.restart()
}

func (s *Slider) Prev() tea.Cmd {
	s.move(s.index - 1)
	return s.restart()
}

// GoTo shows slide i, wrapping out-of-range indexes.
func (s *Slider) GoTo(i int) tea.Cmd {
	s.move(i)
	return s.restart()
}

// SetHovered pauses autoplay while the pointer is over the slider.
func (s *Slider) SetHovered(hovered bool) tea.Cmd {
	if s.hovered == hovered {
		return nil
	}
	s.hovered = hovered
	return s.restart()
}

func (s *Slider) Paused() bool { return s.hovered }
func (s *Slider) Index() int   { return s.index }

func (s *Slider) Current() *data.Entry {
	if len(s.Items) == 0 {
		return nil
	}
	return s.Items[s.index]
}

// Height is the number of rows View renders.
func (s *Slider) Height(theme *styles.Theme) int {
	return lipgloss.Height(s.View(theme))
}

func (s *Slider) View(theme *styles.Theme) string {
	e := s.Current()
	if e == nil {
		return theme.Muted.Render("Nothing featured")
	}

	width := s.Width - 4
	if width < 20 {
		width = 20
	}
	title := theme.Title.UnsetMarginBottom().Render(e.Title)
	meta := theme.Muted.Render(fmt.Sprintf("%s • ★ %.1f • %s",
		e.Author, e.Rating, strings.Join(e.Genres, " · ")))
	synopsis := theme.Text.Render(Truncate(e.Synopsis, width-4))

	footer := s.dots.View()
	if s.hovered {
		footer += theme.Muted.Render("  paused")
	}

	card := theme.ActiveCard.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, meta, "", synopsis),
	)
	return lipgloss.JoinVertical(lipgloss.Center, card, footer)
}
