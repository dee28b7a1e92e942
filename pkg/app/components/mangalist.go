package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/data"
)

// MangaList renders catalog entries as cards with a movable selection.
type MangaList struct {
	Items         []*data.Entry
	Hidden        int // entries left out of Items, shown as "+N more"
	SelectedIndex int
	Focused       bool
	EmptyText     string
	Width         int
	Height        int
}

func NewMangaList() *MangaList {
	return &MangaList{
		Items:     []*data.Entry{},
		EmptyText: "No manga found",
		Width:     80,
		Height:    20,
	}
}

func (m *MangaList) SetItems(items []*data.Entry, hidden int) {
	m.Items = items
	m.Hidden = hidden
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *MangaList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *MangaList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *MangaList) Selected() *data.Entry {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.SelectedIndex]
}

func (m *MangaList) View(theme *styles.Theme) string {
	if len(m.Items) == 0 {
		return theme.Muted.Render(m.EmptyText)
	}

	var b strings.Builder
	for i, e := range m.Items {
		cardStyle := theme.Card
		if m.Focused && i == m.SelectedIndex {
			cardStyle = theme.ActiveCard
		}

		title := theme.Title.UnsetMarginBottom().Render(e.Title)
		meta := theme.Muted.Render(fmt.Sprintf("★ %.1f • %d chapters • %s",
			e.Rating, e.ChapterCount, strings.Join(e.Genres, ", ")))
		status := theme.StatusStyle(e.Status).Render(string(e.Status))

		card := cardStyle.Width(m.Width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, meta, status),
		)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if m.Hidden > 0 {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("+%d more", m.Hidden)))
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate shortens s to at most width runes, ending with "...".
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
