package screens

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/data"
)

const chapterWindow = 10

type DetailsScreen struct {
	deps            Deps
	keys            ListKeyMap
	entryID         string
	entry           *data.Entry
	chapters        []data.Chapter // in display order
	selectedChapter int
	ascending       bool
	width           int
	height          int
	err             error
}

func NewDetailsScreen(deps Deps, entryID string) *DetailsScreen {
	return &DetailsScreen{
		deps:    deps,
		keys:    DefaultListKeyMap(),
		entryID: entryID,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.loadDetails
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Up):
			if s.selectedChapter > 0 {
				s.selectedChapter--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selectedChapter < len(s.chapters)-1 {
				s.selectedChapter++
			}
		case msg.String() == "g":
			s.selectedChapter = 0
		case msg.String() == "G":
			if len(s.chapters) > 0 {
				s.selectedChapter = len(s.chapters) - 1
			}
		case key.Matches(msg, s.keys.Enter):
			if s.selectedChapter < len(s.chapters) {
				id := s.chapters[s.selectedChapter].ID
				return s, func() tea.Msg { return OpenReaderMsg{ChapterID: id, Page: 1} }
			}
		case msg.String() == "o":
			s.ascending = !s.ascending
			slices.Reverse(s.chapters)
			if len(s.chapters) > 0 {
				s.selectedChapter = len(s.chapters) - 1 - s.selectedChapter
			}
		case msg.String() == "b":
			s.deps.State.ToggleBookmark(s.entryID)
		case msg.String() == "f":
			s.deps.State.ToggleLike(s.entryID)
		case msg.String() == "r":
			return s, s.loadDetails
		case key.Matches(msg, s.keys.Back), msg.String() == "q":
			return s, func() tea.Msg { return BackMsg{} }
		}

	case detailsLoadedMsg:
		s.entry = msg.entry
		s.chapters = slices.Clone(msg.chapters)
		if !s.ascending {
			slices.Reverse(s.chapters)
		}
		s.err = msg.err
		if s.selectedChapter >= len(s.chapters) {
			s.selectedChapter = 0
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	theme := s.deps.Theme
	if s.err != nil && s.entry == nil {
		return theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n" +
			theme.Help.Render("esc: back")
	}
	if s.entry == nil {
		return "Loading..."
	}

	header := theme.Title.Render(fmt.Sprintf("📖 %s", s.entry.Title))

	var errorMsg string
	if s.err != nil {
		errorMsg = theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	help := theme.Help.Render(
		"↑/k ↓/j: navigate • g/G: first/last • enter: read • o: order • b: bookmark • f: like • r: refresh • esc: back",
	)

	return fmt.Sprintf("%s\n%s%s\n%s\n%s",
		header,
		errorMsg,
		s.renderInfo(),
		s.renderChaptersList(),
		help,
	)
}

func (s *DetailsScreen) renderInfo() string {
	theme := s.deps.Theme
	e := s.entry

	lines := []string{
		theme.Muted.Render(fmt.Sprintf("by %s", e.Author)),
		theme.StatusStyle(e.Status).Render(string(e.Status)) +
			theme.Muted.Render(fmt.Sprintf(" • ★ %.1f • %s views • %s",
				e.Rating, formatViews(e.Views), strings.Join(e.Genres, ", "))),
	}
	if len(e.AltTitles) > 0 {
		lines = append(lines, theme.Muted.Render("aka "+strings.Join(e.AltTitles, " / ")))
	}
	var marks []string
	if s.deps.State.Bookmarked(e.ID) {
		marks = append(marks, "🔖 Bookmarked")
	}
	if s.deps.State.Liked(e.ID) {
		marks = append(marks, "♥ Liked")
	}
	if len(marks) > 0 {
		lines = append(lines, theme.StatusInfo.Render(strings.Join(marks, " • ")))
	}

	width := s.width - 4
	if width < 20 {
		width = 76
	}
	lines = append(lines, "", theme.Text.Width(width-4).Render(e.Synopsis))

	return theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *DetailsScreen) renderChaptersList() string {
	theme := s.deps.Theme
	if len(s.chapters) == 0 {
		return theme.Muted.Render("No chapters available")
	}

	var b strings.Builder
	order := "newest first"
	if s.ascending {
		order = "oldest first"
	}
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Chapters (%d total, %s):", len(s.chapters), order)))
	b.WriteString("\n\n")

	start, end := window(s.selectedChapter, len(s.chapters), chapterWindow)
	for i := start; i < end; i++ {
		line := "○ " + s.chapters[i].Label()
		if i == s.selectedChapter {
			line = theme.Selected.Render(line)
		} else {
			line = theme.Muted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(s.chapters) > chapterWindow {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(
			fmt.Sprintf("Showing %d-%d of %d chapters", start+1, end, len(s.chapters)),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the [start, end) range of size items centered on selected.
func window(selected, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

// Messages
type detailsLoadedMsg struct {
	entry    *data.Entry
	chapters []data.Chapter
	err      error
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	ctx := context.Background()
	entry, err := s.deps.Controller.GetManga(ctx, s.entryID)
	if err != nil {
		return detailsLoadedMsg{err: err}
	}
	chapters, err := s.deps.Controller.Chapters(ctx, s.entryID)
	if err != nil {
		return detailsLoadedMsg{entry: entry, err: err}
	}
	return detailsLoadedMsg{entry: entry, chapters: chapters}
}
