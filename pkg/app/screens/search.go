package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/search"
)

type SearchScreen struct {
	deps       Deps
	keys       ListKeyMap
	input      textinput.Model
	list       *components.MangaList
	result     search.Result
	suggestion int
	width      int
	height     int
}

func NewSearchScreen(deps Deps) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search titles, alternate titles or genres..."
	ti.CharLimit = 100
	ti.Width = 50

	list := components.NewMangaList()
	list.EmptyText = "No results found"

	s := &SearchScreen{
		deps:  deps,
		keys:  DefaultListKeyMap(),
		input: ti,
		list:  list,
	}
	s.refresh()
	return s
}

func (s *SearchScreen) Init() tea.Cmd {
	return nil
}

// Focus puts the cursor in the query field.
func (s *SearchScreen) Focus() tea.Cmd {
	s.list.Focused = false
	return s.input.Focus()
}

// SetQuery replaces the query and refilters.
func (s *SearchScreen) SetQuery(q string) tea.Cmd {
	s.input.SetValue(q)
	s.input.CursorEnd()
	s.refresh()
	return nil
}

func (s *SearchScreen) Result() search.Result {
	return s.result
}

func (s *SearchScreen) refresh() {
	s.result = s.deps.Controller.Search(s.input.Value())
	shown, hidden := s.result.Top(s.deps.State.DisplayLimit())
	s.list.SetItems(shown, hidden)
}

func (s *SearchScreen) suggestions() []string {
	sg := s.deps.State.Suggestions()
	return append(sg.Recent, sg.Trending...)
}

func (s *SearchScreen) submit() {
	s.refresh()
	if !s.result.Active {
		return
	}
	s.deps.State.RecordSearch(strings.TrimSpace(s.input.Value()))
	s.input.Blur()
	s.list.Focused = true
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 2
		return s, nil

	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "enter":
				s.submit()
				return s, nil
			case "esc", "down":
				s.input.Blur()
				s.list.Focused = true
				return s, nil
			}
			s.input, cmd = s.input.Update(msg)
			s.refresh()
			return s, cmd
		}

		switch {
		case key.Matches(msg, s.keys.Search), msg.String() == "esc":
			return s, s.Focus()
		case key.Matches(msg, s.keys.Up):
			if s.result.Active {
				s.list.Prev()
			} else if n := len(s.suggestions()); n > 0 {
				s.suggestion = (s.suggestion - 1 + n) % n
			}
		case key.Matches(msg, s.keys.Down):
			if s.result.Active {
				s.list.Next()
			} else if n := len(s.suggestions()); n > 0 {
				s.suggestion = (s.suggestion + 1) % n
			}
		case key.Matches(msg, s.keys.Enter):
			if s.result.Active {
				if e := s.list.Selected(); e != nil {
					return s, openDetails(e.ID)
				}
				return s, nil
			}
			if sg := s.suggestions(); s.suggestion < len(sg) {
				s.input.SetValue(sg[s.suggestion])
				s.submit()
			}
		case msg.String() == "v":
			if s.result.Active && len(s.result.Entries) > 0 {
				return s, switchScreen("browse", s.result.Query)
			}
		case msg.String() == "q":
			return s, tea.Quit
		}
		return s, nil
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *SearchScreen) View() string {
	theme := s.deps.Theme
	header := theme.Title.Render("🔍 Search Manga")

	inputStyle := theme.Input
	if s.input.Focused() {
		inputStyle = theme.FocusedInput
	}
	inputView := inputStyle.Render(s.input.View())

	var body string
	switch {
	case !s.result.Active:
		body = s.renderSuggestions()
	case len(s.result.Entries) == 0:
		body = theme.Muted.Render(fmt.Sprintf("No results for %q", s.result.Query))
	default:
		body = theme.Subtitle.Render(fmt.Sprintf("Found %d results:", len(s.result.Entries))) +
			"\n\n" + s.list.View(theme)
		if s.list.Hidden > 0 {
			body += "\n" + theme.Muted.Render("v: view all results")
		}
	}

	help := theme.Help.Render(
		"enter: search/open • esc: switch focus • ↑/k ↓/j: navigate • v: view all • tab: switch view",
	)
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", header, inputView, body, help)
}

func (s *SearchScreen) renderSuggestions() string {
	theme := s.deps.Theme
	sg := s.deps.State.Suggestions()

	var b strings.Builder
	i := 0
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(theme.Subtitle.Render(title))
		b.WriteString("\n")
		for _, item := range items {
			line := "  " + item
			if !s.input.Focused() && i == s.suggestion {
				line = theme.Selected.UnsetBorderStyle().Render("› " + item)
			} else {
				line = theme.Text.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			i++
		}
		b.WriteString("\n")
	}
	section("Recent Searches", sg.Recent)
	section("Trending", sg.Trending)

	if i == 0 {
		return theme.Muted.Render("Start typing to search")
	}
	return b.String()
}
