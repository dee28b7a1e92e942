package screens

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/data"
)

var browseStatuses = []data.Status{"", data.StatusOngoing, data.StatusCompleted, data.StatusHiatus}

// BrowseScreen is the "view all" catalog listing.
type BrowseScreen struct {
	deps      Deps
	keys      ListKeyMap
	table     table.Model
	entries   []*data.Entry
	genres    []string
	query     data.BrowseQuery
	genreIdx  int // 0 is every genre
	statusIdx int
	sortIdx   int
	width     int
	height    int
	err       error
}

func NewBrowseScreen(deps Deps) *BrowseScreen {
	t := table.New(
		table.WithColumns(browseColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return &BrowseScreen{
		deps:  deps,
		keys:  DefaultListKeyMap(),
		table: t,
		query: data.BrowseQuery{Sort: data.SortUpdated},
	}
}

func browseColumns(width int) []table.Column {
	title := width - 60
	if title < 20 {
		title = 20
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Status", Width: 10},
		{Title: "Rating", Width: 6},
		{Title: "Chapters", Width: 8},
		{Title: "Views", Width: 10},
		{Title: "Updated", Width: 10},
	}
}

func (s *BrowseScreen) Init() tea.Cmd {
	return tea.Batch(s.loadGenres, s.loadCmd())
}

// SetSearchFilter narrows the listing to the entries a search for q
// matches, listed in catalog order like the search results. A blank q
// shows the whole catalog in the default order.
func (s *BrowseScreen) SetSearchFilter(q string) {
	s.genreIdx, s.statusIdx, s.sortIdx = 0, 0, 0
	if strings.TrimSpace(q) == "" {
		s.query = data.BrowseQuery{Sort: data.SortUpdated}
		return
	}
	s.query = data.BrowseQuery{Query: q, Sort: data.SortCatalog}
	s.sortIdx = slices.Index(data.SortKeys, data.SortCatalog)
}

func (s *BrowseScreen) Query() data.BrowseQuery {
	return s.query
}

func (s *BrowseScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.table.SetColumns(browseColumns(msg.Width))
		if h := msg.Height - 12; h > 3 {
			s.table.SetHeight(h)
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "g":
			s.genreIdx = (s.genreIdx + 1) % (len(s.genres) + 1)
			s.query.Genre = ""
			if s.genreIdx > 0 {
				s.query.Genre = s.genres[s.genreIdx-1]
			}
			return s, s.loadCmd()
		case msg.String() == "s":
			s.statusIdx = (s.statusIdx + 1) % len(browseStatuses)
			s.query.Status = browseStatuses[s.statusIdx]
			return s, s.loadCmd()
		case msg.String() == "o":
			s.sortIdx = (s.sortIdx + 1) % len(data.SortKeys)
			s.query.Sort = data.SortKeys[s.sortIdx]
			return s, s.loadCmd()
		case msg.String() == "x":
			s.genreIdx, s.statusIdx, s.sortIdx = 0, 0, 0
			s.query = data.BrowseQuery{Sort: data.SortUpdated}
			return s, s.loadCmd()
		case msg.String() == "r":
			return s, s.loadCmd()
		case msg.String() == "q":
			return s, tea.Quit
		case key.Matches(msg, s.keys.Enter):
			if i := s.table.Cursor(); i >= 0 && i < len(s.entries) {
				return s, openDetails(s.entries[i].ID)
			}
			return s, nil
		}

	case browseLoadedMsg:
		if msg.query != s.query {
			return s, nil
		}
		s.err = msg.err
		if msg.err == nil {
			s.entries = msg.entries
			s.table.SetRows(browseRows(msg.entries))
			if s.table.Cursor() >= len(msg.entries) {
				s.table.SetCursor(0)
			}
		}
		return s, nil

	case genresLoadedMsg:
		if msg.err != nil {
			s.err = msg.err
		} else {
			s.genres = msg.genres
		}
		return s, nil
	}

	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func browseRows(entries []*data.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		updated := ""
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Format("2006-01-02")
		}
		rows[i] = table.Row{
			e.Title,
			string(e.Status),
			fmt.Sprintf("%.1f", e.Rating),
			strconv.Itoa(e.ChapterCount),
			formatViews(e.Views),
			updated,
		}
	}
	return rows
}

// formatViews abbreviates large counts: 12500000 -> 12.5M.
func formatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}

func (s *BrowseScreen) View() string {
	theme := s.deps.Theme
	header := theme.Title.Render("📚 All Manga")

	genre := "all"
	if s.query.Genre != "" {
		genre = s.query.Genre
	}
	status := "all"
	if s.query.Status != "" {
		status = string(s.query.Status)
	}
	filters := fmt.Sprintf("genre: %s • status: %s • sort: %s", genre, status, s.query.Sort)
	if s.query.Title != "" {
		filters = fmt.Sprintf("title: %q • %s", s.query.Title, filters)
	}
	if s.query.Query != "" {
		filters = fmt.Sprintf("search: %q • %s", s.query.Query, filters)
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	body := s.table.View()
	if len(s.entries) == 0 {
		body = theme.Muted.Render("No manga match these filters")
	}

	help := theme.Help.Render(
		"↑/↓: navigate • enter: open • g: genre • s: status • o: sort • x: clear filters • tab: switch view",
	)
	return fmt.Sprintf("%s\n%s\n%s\n\n%s%s\n%s",
		header,
		theme.Subtitle.Render(filters),
		theme.Muted.Render(fmt.Sprintf("%d titles", len(s.entries))),
		errorMsg,
		body,
		help,
	)
}

// Messages
type browseLoadedMsg struct {
	query   data.BrowseQuery
	entries []*data.Entry
	err     error
}

type genresLoadedMsg struct {
	genres []string
	err    error
}

// Commands
func (s *BrowseScreen) loadCmd() tea.Cmd {
	q := s.query
	return func() tea.Msg {
		entries, err := s.deps.Controller.Browse(context.Background(), q)
		return browseLoadedMsg{query: q, entries: entries, err: err}
	}
}

func (s *BrowseScreen) loadGenres() tea.Msg {
	genres, err := s.deps.Controller.Genres(context.Background())
	return genresLoadedMsg{genres: genres, err: err}
}
