package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/store"
	"github.com/shopspring/decimal"
)

// AdminScreen is the dashboard shown in admin mode.
type AdminScreen struct {
	deps Deps

	stats   services.CatalogStats
	err     error
	clearID uuid.UUID

	editing   bool
	baseCoins textinput.Model
	basePrice textinput.Model
	rateFocus int

	tracker *components.ProgressTracker
	toast   components.Toast

	width  int
	height int
}

func NewAdminScreen(deps Deps) *AdminScreen {
	coins := textinput.New()
	coins.Prompt = "Coins  "
	coins.CharLimit = 6
	coins.Width = 10

	price := textinput.New()
	price.Prompt = "Price $"
	price.CharLimit = 10
	price.Width = 10

	return &AdminScreen{
		deps:      deps,
		baseCoins: coins,
		basePrice: price,
		tracker:   components.NewProgressTracker(60),
	}
}

func (s *AdminScreen) Init() tea.Cmd {
	return s.loadStats
}

// Leave cancels a cache clear in flight.
func (s *AdminScreen) Leave() tea.Cmd {
	s.deps.Runner.CancelOwner(ownerAdmin)
	s.clearID = uuid.Nil
	s.tracker.Clear()
	s.editing = false
	s.toast.Hide()
	return nil
}

func (s *AdminScreen) Clearing() bool {
	return s.clearID != uuid.Nil
}

func (s *AdminScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case statsLoadedMsg:
		s.stats = msg.stats
		s.err = msg.err

	case OperationDoneMsg:
		s.tracker.Update(msg.Result)
		if msg.ID != s.clearID {
			return s, nil
		}
		s.clearID = uuid.Nil
		if msg.Err != nil {
			return s, s.toast.Show(components.ToastError, "Clear Cache Failed", msg.Err.Error(), components.DefaultToastDuration)
		}
		s.deps.State.ClearCache()
		return s, tea.Batch(
			s.loadStats,
			s.toast.Show(components.ToastSuccess, "Cache Cleared", "Catalog reloaded and search history cleared", components.DefaultToastDuration),
		)

	case spinner.TickMsg:
		return s, s.tracker.Update(msg)

	case components.ToastExpiredMsg:
		s.toast.Update(msg)

	case tea.KeyMsg:
		if s.editing {
			return s, s.handleRateKey(msg)
		}
		return s, s.handleKey(msg)
	}

	return s, nil
}

func (s *AdminScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := s.deps.State
	switch msg.String() {
	case "p":
		state.SetPaymentsEnabled(!state.PaymentsEnabled())
	case "c":
		state.SetCacheEnabled(!state.CacheEnabled())
	case "x":
		return s.clearCache()
	case "e":
		rate := state.Rate()
		s.baseCoins.SetValue(fmt.Sprintf("%d", rate.BaseCoins))
		s.basePrice.SetValue(rate.BasePrice.StringFixed(2))
		s.editing = true
		s.rateFocus = 0
		s.basePrice.Blur()
		return s.baseCoins.Focus()
	case "r":
		return s.loadStats
	case "a":
		state.SetAdminMode(false)
	case "q":
		return tea.Quit
	}
	return nil
}

func (s *AdminScreen) handleRateKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEsc:
		s.editing = false
		return nil
	case tea.KeyUp, tea.KeyDown:
		s.rateFocus = 1 - s.rateFocus
		if s.rateFocus == 0 {
			s.basePrice.Blur()
			return s.baseCoins.Focus()
		}
		s.baseCoins.Blur()
		return s.basePrice.Focus()
	case tea.KeyEnter:
		return s.applyRate()
	}

	if s.rateFocus == 0 {
		s.baseCoins, cmd = s.baseCoins.Update(msg)
	} else {
		s.basePrice, cmd = s.basePrice.Update(msg)
	}
	return cmd
}

func (s *AdminScreen) applyRate() tea.Cmd {
	var coins int64
	if _, err := fmt.Sscan(strings.TrimSpace(s.baseCoins.Value()), &coins); err != nil {
		return s.toast.Show(components.ToastError, "Invalid Rate", "Base coins must be a whole number", components.DefaultToastDuration)
	}
	rate, err := store.NewRate(coins, strings.TrimPrefix(strings.TrimSpace(s.basePrice.Value()), "$"))
	if err == nil {
		err = s.deps.State.SetRate(rate)
	}
	if err != nil {
		return s.toast.Show(components.ToastError, "Invalid Rate", err.Error(), components.DefaultToastDuration)
	}
	s.editing = false
	return s.toast.Show(components.ToastSuccess, "Rate Updated", rate.String(), components.DefaultToastDuration)
}

// clearCache reloads the catalog after the configured delay.
func (s *AdminScreen) clearCache() tea.Cmd {
	if s.Clearing() {
		return nil
	}
	controller := s.deps.Controller
	delay := s.deps.State.CacheClearDelay()
	id, err := s.deps.Runner.Start(ownerAdmin, services.OpClearCache, func(ctx context.Context) (any, error) {
		if err := services.Sleep(ctx, delay); err != nil {
			return nil, err
		}
		return nil, controller.RebuildCache(ctx)
	})
	if err != nil {
		return s.toast.Show(components.ToastError, "Clear Cache Failed", err.Error(), components.DefaultToastDuration)
	}
	s.clearID = id
	return s.tracker.Start(id, services.OpClearCache, "Clearing cache...")
}

func (s *AdminScreen) View() string {
	theme := s.deps.Theme
	state := s.deps.State
	header := theme.Title.Render("🛠 Admin Dashboard")

	onOff := func(on bool) string {
		if on {
			return theme.StatusSuccess.Render("on")
		}
		return theme.StatusError.Render("off")
	}

	revenue := decimal.Zero
	receipts := state.Receipts()
	for _, r := range receipts {
		revenue = revenue.Add(r.Amount)
	}

	catalog := lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render("Catalog"),
		fmt.Sprintf("Titles:   %d", s.stats.Entries),
		fmt.Sprintf("Indexed:  %d browse • %d search", s.stats.Indexed, s.stats.Searched),
		fmt.Sprintf("Chapters: %d", s.stats.Chapters),
		fmt.Sprintf("Genres:   %d", s.stats.Genres),
		fmt.Sprintf("Views:    %s", formatViews(s.stats.Views)),
		fmt.Sprintf("Ongoing %d • Completed %d • Hiatus %d",
			s.stats.ByStatus[data.StatusOngoing],
			s.stats.ByStatus[data.StatusCompleted],
			s.stats.ByStatus[data.StatusHiatus]),
	)

	sales := lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render("Store"),
		fmt.Sprintf("Rate:      %s", state.Rate()),
		fmt.Sprintf("Purchases: %d", len(receipts)),
		fmt.Sprintf("Revenue:   $%s", revenue.StringFixed(2)),
		fmt.Sprintf("Balance:   %d coins", state.Balance()),
	)

	settings := lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render("Settings"),
		"Payments: "+onOff(state.PaymentsEnabled()),
		"Cache:    "+onOff(state.CacheEnabled()),
		"Theme:    "+string(state.Theme()),
	)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Card.Render(catalog),
		theme.Card.Render(sales),
		theme.Card.Render(settings),
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if s.err != nil {
		b.WriteString(theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(panels)
	b.WriteString("\n\n")

	if s.editing {
		b.WriteString(theme.Subtitle.Render("Edit coin rate"))
		b.WriteString("\n")
		b.WriteString(theme.FocusedInput.Render(s.baseCoins.View()))
		b.WriteString(" = ")
		b.WriteString(theme.FocusedInput.Render(s.basePrice.View()))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render("↑ ↓: field • enter: apply • esc: cancel"))
		b.WriteString("\n\n")
	}
	if v := s.tracker.View(theme); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}
	if v := s.toast.View(theme); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString(theme.Help.Render(
		"e: edit rate • p: payments • c: cache • x: clear cache • r: refresh • a: leave admin mode • ^t: theme",
	))
	return b.String()
}

// Messages
type statsLoadedMsg struct {
	stats services.CatalogStats
	err   error
}

// Commands
func (s *AdminScreen) loadStats() tea.Msg {
	stats, err := s.deps.Controller.Stats(context.Background())
	return statsLoadedMsg{stats: stats, err: err}
}
