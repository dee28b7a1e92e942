package screens

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/store"
	"github.com/shopspring/decimal"
)

type profileTab int

const (
	overviewTab profileTab = iota
	purchasedTab
	likedTab
	bookmarkedTab
)

var profileTabNames = []string{"Overview", "Purchased", "Liked", "Bookmarked"}

const activityLimit = 5

// ProfileScreen shows the reader's purchases and saved titles.
type ProfileScreen struct {
	deps   Deps
	keys   ListKeyMap
	tab    profileTab
	cursor int
	width  int
	height int
}

func NewProfileScreen(deps Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps, keys: DefaultListKeyMap()}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

// saved lists the entries behind the current tab, if it lists any.
func (s *ProfileScreen) saved() []services.Saved {
	switch s.tab {
	case likedTab:
		return s.deps.State.Likes()
	case bookmarkedTab:
		return s.deps.State.Bookmarks()
	}
	return nil
}

func (s *ProfileScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		n := len(profileTabNames)
		switch {
		case key.Matches(msg, s.keys.Left):
			s.tab = profileTab((int(s.tab) - 1 + n) % n)
			s.cursor = 0
		case key.Matches(msg, s.keys.Right):
			s.tab = profileTab((int(s.tab) + 1) % n)
			s.cursor = 0
		case key.Matches(msg, s.keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keys.Down):
			if s.cursor < len(s.saved())-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keys.Enter):
			if list := s.saved(); s.cursor < len(list) {
				return s, openDetails(list[s.cursor].EntryID)
			}
		case msg.String() == "x":
			list := s.saved()
			if s.cursor >= len(list) {
				return s, nil
			}
			if s.tab == likedTab {
				s.deps.State.ToggleLike(list[s.cursor].EntryID)
			} else {
				s.deps.State.ToggleBookmark(list[s.cursor].EntryID)
			}
			if s.cursor > 0 && s.cursor >= len(list)-1 {
				s.cursor--
			}
		case msg.String() == "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *ProfileScreen) View() string {
	theme := s.deps.Theme
	header := theme.Title.Render("👤 Profile")

	tabs := make([]string, len(profileTabNames))
	for i, name := range profileTabNames {
		if profileTab(i) == s.tab {
			tabs[i] = theme.ActiveTab.Render(name)
		} else {
			tabs[i] = theme.InactiveTab.Render(name)
		}
	}

	var body string
	switch s.tab {
	case overviewTab:
		body = s.renderOverview()
	case purchasedTab:
		body = s.renderPurchases()
	case likedTab:
		body = s.renderSaved("Liked Manga", "Liked", "No liked manga yet. Press f on a title to like it.")
	case bookmarkedTab:
		body = s.renderSaved("Bookmarked Manga", "Bookmarked", "No bookmarks yet. Press b on a title to bookmark it.")
	}

	help := theme.Help.Render("←/→: section • ↑/↓: navigate • enter: open • x: remove • tab: switch view")
	return fmt.Sprintf("%s\n%s\n\n%s\n%s",
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		body,
		help,
	)
}

func (s *ProfileScreen) titles() map[string]string {
	out := make(map[string]string)
	for _, e := range s.deps.Controller.Entries() {
		out[e.ID] = e.Title
	}
	return out
}

func titleOf(titles map[string]string, id string) string {
	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

func (s *ProfileScreen) renderOverview() string {
	theme := s.deps.Theme
	state := s.deps.State
	receipts := state.Receipts()

	spent := decimal.Zero
	var coins int64
	for _, r := range receipts {
		spent = spent.Add(r.Amount)
		coins += r.Coins
	}

	card := func(title, value, note string) string {
		return theme.Card.Width(24).Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.Subtitle.Render(title),
			theme.Title.Render(value),
			theme.Muted.Render(note),
		))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Purchased", fmt.Sprintf("%d", len(receipts)), fmt.Sprintf("$%s total spent", spent.StringFixed(2))),
		card("Liked Series", fmt.Sprintf("%d", len(state.Likes())), "Series you love"),
		card("Bookmarked", fmt.Sprintf("%d", len(state.Bookmarks())), "Reading later"),
		card("Available Coins", fmt.Sprintf("%d", state.Balance()), fmt.Sprintf("%d bought", coins)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		theme.Subtitle.Render("Recent Activity"),
		s.renderActivity(),
	)
}

type activity struct {
	at   time.Time
	text string
}

func (s *ProfileScreen) renderActivity() string {
	theme := s.deps.Theme
	titles := s.titles()

	var events []activity
	for _, r := range s.deps.State.Receipts() {
		events = append(events, activity{r.At, fmt.Sprintf("Purchased %d coins - $%s", r.Coins, r.Amount.StringFixed(2))})
	}
	for _, sv := range s.deps.State.Likes() {
		events = append(events, activity{sv.At, fmt.Sprintf("Liked %q", titleOf(titles, sv.EntryID))})
	}
	for _, sv := range s.deps.State.Bookmarks() {
		events = append(events, activity{sv.At, fmt.Sprintf("Bookmarked %q", titleOf(titles, sv.EntryID))})
	}
	if len(events) == 0 {
		return theme.Muted.Render("Nothing yet")
	}

	slices.SortStableFunc(events, func(a, b activity) int { return b.at.Compare(a.at) })
	if len(events) > activityLimit {
		events = events[:activityLimit]
	}
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = fmt.Sprintf("• %s %s", ev.text, theme.Muted.Render(ago(ev.at)))
	}
	return strings.Join(lines, "\n")
}

func (s *ProfileScreen) renderPurchases() string {
	theme := s.deps.Theme
	receipts := s.deps.State.Receipts()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Coin Purchases (%d)", len(receipts))))
	b.WriteString("\n\n")
	if len(receipts) == 0 {
		b.WriteString(theme.Muted.Render("No purchases yet. The store tab sells coins."))
		b.WriteString("\n")
		return b.String()
	}

	// newest first
	slices.SortStableFunc(receipts, func(x, y store.Receipt) int { return y.At.Compare(x.At) })
	for _, r := range receipts {
		b.WriteString(fmt.Sprintf("%6d coins  $%-8s %s  %s\n",
			r.Coins, r.Amount.StringFixed(2), r.Reference, theme.Muted.Render(r.At.Format("2006-01-02 15:04"))))
	}
	return b.String()
}

func (s *ProfileScreen) renderSaved(heading, verb, empty string) string {
	theme := s.deps.Theme
	list := s.saved()
	titles := s.titles()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s (%d)", heading, len(list))))
	b.WriteString("\n\n")
	if len(list) == 0 {
		b.WriteString(theme.Muted.Render(empty))
		b.WriteString("\n")
		return b.String()
	}
	for i, sv := range list {
		line := fmt.Sprintf("%s  %s", titleOf(titles, sv.EntryID),
			theme.Muted.Render(fmt.Sprintf("%s: %s", verb, sv.At.Format("2006-01-02"))))
		if i == s.cursor {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ago renders a coarse relative time.
func ago(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	}
	return fmt.Sprintf("%d days ago", int(d.Hours()/24))
}
