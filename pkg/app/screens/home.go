package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/data"
)

const homeListSize = 5

type HomeScreen struct {
	deps    Deps
	keys    ListKeyMap
	slider  *components.Slider
	recent  []*data.Entry
	popular []*data.Entry
	width   int
	height  int
	err     error
}

func NewHomeScreen(deps Deps) *HomeScreen {
	return &HomeScreen{
		deps:   deps,
		keys:   DefaultListKeyMap(),
		slider: components.NewSlider(deps.Controller.Featured(), deps.State.AutoplayInterval()),
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return tea.Batch(s.slider.Init(), s.loadLists)
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.slider.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Left):
			return s, s.slider.Prev()
		case key.Matches(msg, s.keys.Right):
			return s, s.slider.Next()
		case key.Matches(msg, s.keys.Enter):
			if e := s.slider.Current(); e != nil {
				return s, openDetails(e.ID)
			}
		case key.Matches(msg, s.keys.Search):
			return s, switchScreen("search", nil)
		case msg.String() == "v":
			return s, switchScreen("browse", "")
		case msg.String() == "q":
			return s, tea.Quit
		}

	case tea.MouseMsg:
		top := contentTop + lipgloss.Height(s.header())
		bottom := top + s.slider.Height(s.deps.Theme)
		cmd := s.slider.SetHovered(msg.Y >= top && msg.Y < bottom)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && s.slider.Paused() {
			if e := s.slider.Current(); e != nil {
				return s, tea.Batch(cmd, openDetails(e.ID))
			}
		}
		return s, cmd

	case components.SlideTickMsg:
		return s, s.slider.Update(msg)

	case homeLoadedMsg:
		s.recent = msg.recent
		s.popular = msg.popular
		s.err = msg.err
	}

	return s, nil
}

// Leave resumes autoplay so the slider is not stuck paused off screen.
func (s *HomeScreen) Leave() tea.Cmd {
	return s.slider.SetHovered(false)
}

func (s *HomeScreen) header() string {
	return s.deps.Theme.Title.Render("Featured")
}

func (s *HomeScreen) View() string {
	theme := s.deps.Theme
	var b strings.Builder
	b.WriteString(s.header())
	b.WriteString("\n")
	b.WriteString(s.slider.View(theme))
	b.WriteString("\n\n")

	if s.err != nil {
		b.WriteString(theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n\n")
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		s.renderColumn("Recently Updated", s.recent),
		"    ",
		s.renderColumn("Popular", s.popular),
	)
	b.WriteString(columns)
	b.WriteString("\n")

	b.WriteString(theme.Help.Render(
		"←/h →/l: slide • enter: open • /: search • v: view all • tab: switch view • q: quit",
	))
	return b.String()
}

func (s *HomeScreen) renderColumn(title string, entries []*data.Entry) string {
	theme := s.deps.Theme
	lines := []string{theme.Subtitle.Render(title)}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s %s",
			i+1,
			theme.Text.Render(components.Truncate(e.Title, 32)),
			theme.Muted.Render(fmt.Sprintf("(%d ch)", e.ChapterCount)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Messages
type homeLoadedMsg struct {
	recent  []*data.Entry
	popular []*data.Entry
	err     error
}

// Commands
func (s *HomeScreen) loadLists() tea.Msg {
	ctx := context.Background()
	recent, err := s.deps.Controller.Browse(ctx, data.BrowseQuery{Sort: data.SortUpdated})
	if err != nil {
		return homeLoadedMsg{err: err}
	}
	popular, err := s.deps.Controller.Browse(ctx, data.BrowseQuery{Sort: data.SortViews})
	if err != nil {
		return homeLoadedMsg{err: err}
	}
	return homeLoadedMsg{recent: head(recent, homeListSize), popular: head(popular, homeListSize)}
}

func head(entries []*data.Entry, n int) []*data.Entry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func openDetails(id string) tea.Cmd {
	return func() tea.Msg { return OpenDetailsMsg{EntryID: id} }
}

func switchScreen(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg { return SwitchScreenMsg{Screen: screen, Data: data} }
}
