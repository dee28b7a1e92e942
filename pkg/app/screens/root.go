package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/services"
	"go.uber.org/zap"
)

type screenType int

const (
	homeView screenType = iota
	searchView
	browseView
	storeView
	profileView
	adminView
	detailsView
	readerView
)

var tabNames = map[screenType]string{
	homeView:    "home",
	searchView:  "search",
	browseView:  "browse",
	storeView:   "store",
	profileView: "profile",
	adminView:   "admin",
}

// contentTop is the first terminal row below the tab bar.
const contentTop = 2

type leaver interface {
	Leave() tea.Cmd
}

type RootScreen struct {
	deps Deps
	keys GlobalKeyMap

	currentView screenType
	lastTab     screenType
	home        *HomeScreen
	search      *SearchScreen
	browse      *BrowseScreen
	store       *StoreScreen
	profile     *ProfileScreen
	admin       *AdminScreen
	details     *DetailsScreen
	reader      *ReaderScreen

	initial tea.Cmd
	width   int
	height  int
}

// RootOption adjusts the root screen before it starts.
type RootOption func(*RootScreen)

// StartInReader opens chapterID at page as soon as the program starts.
func StartInReader(chapterID string, page int) RootOption {
	return func(r *RootScreen) {
		r.initial = func() tea.Msg {
			return OpenReaderMsg{ChapterID: chapterID, Page: page}
		}
	}
}

func NewRootScreen(deps Deps, opts ...RootOption) *RootScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Theme == nil {
		theme := styles.ForName(string(deps.State.Theme()))
		deps.Theme = &theme
	}

	r := &RootScreen{
		deps:        deps,
		keys:        DefaultGlobalKeyMap(),
		currentView: homeView,
		home:        NewHomeScreen(deps),
		search:      NewSearchScreen(deps),
		browse:      NewBrowseScreen(deps),
		store:       NewStoreScreen(deps),
		profile:     NewProfileScreen(deps),
		admin:       NewAdminScreen(deps),
	}
	for _, opt := range opts {
		opt(r)
	}

	deps.State.Subscribe(r.onStateChange)
	return r
}

func (r *RootScreen) onStateChange(c services.Change) {
	switch c {
	case services.ChangeTheme:
		*r.deps.Theme = styles.ForName(string(r.deps.State.Theme()))
	case services.ChangeAdminMode:
		if !r.deps.State.AdminMode() && r.currentView == adminView {
			r.admin.Leave()
			r.currentView = homeView
		}
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		r.home.Init(),
		r.search.Init(),
		r.browse.Init(),
		r.store.Init(),
		r.profile.Init(),
		r.admin.Init(),
		r.listenForResults,
		r.initial,
	)
}

func (r *RootScreen) listenForResults() tea.Msg {
	res, ok := <-r.deps.Runner.Results()
	if !ok {
		return nil
	}
	return OperationDoneMsg{Result: res}
}

func (r *RootScreen) tabs() []screenType {
	tabs := []screenType{homeView, searchView, browseView, storeView, profileView}
	if r.deps.State.AdminMode() {
		tabs = append(tabs, adminView)
	}
	return tabs
}

func (r *RootScreen) isTab(v screenType) bool {
	return v <= adminView
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		return r, r.broadcast(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Quit):
			r.leave(r.currentView)
			return r, tea.Quit
		case key.Matches(msg, r.keys.ToggleTheme):
			theme := r.deps.State.ToggleTheme()
			r.deps.Logger.Debug("Theme toggled", zap.String("theme", string(theme)))
			return r, nil
		case key.Matches(msg, r.keys.ToggleAdmin):
			r.deps.State.SetAdminMode(!r.deps.State.AdminMode())
			return r, nil
		case key.Matches(msg, r.keys.NextTab) && r.isTab(r.currentView):
			return r, r.cycle(1)
		case key.Matches(msg, r.keys.PrevTab) && r.isTab(r.currentView):
			return r, r.cycle(-1)
		}

	case SwitchScreenMsg:
		for v, name := range tabNames {
			if name == msg.Screen {
				return r, r.switchTo(v, msg.Data)
			}
		}
		r.deps.Logger.Warn("Unknown screen", zap.String("screen", msg.Screen))
		return r, nil

	case OpenDetailsMsg:
		r.leave(r.currentView)
		if r.isTab(r.currentView) {
			r.lastTab = r.currentView
		}
		r.details = NewDetailsScreen(r.deps, msg.EntryID)
		r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
		r.currentView = detailsView
		return r, r.details.Init()

	case OpenReaderMsg:
		r.leave(r.currentView)
		if r.isTab(r.currentView) {
			r.lastTab = r.currentView
		}
		r.reader = NewReaderScreen(r.deps, msg.ChapterID, msg.Page)
		r.reader.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
		r.currentView = readerView
		return r, r.reader.Init()

	case BackMsg:
		switch {
		case r.currentView == readerView && r.details != nil:
			r.reader = nil
			r.currentView = detailsView
		default:
			r.reader = nil
			r.details = nil
			r.currentView = r.lastTab
		}
		return r, nil

	case OperationDoneMsg:
		switch msg.Owner {
		case ownerStore:
			_, cmd = r.store.Update(msg)
		case ownerAdmin:
			_, cmd = r.admin.Update(msg)
		}
		return r, tea.Batch(cmd, r.listenForResults)
	}

	return r, r.forward(msg)
}

// forward hands msg to the active screen.
func (r *RootScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch r.currentView {
	case homeView:
		_, cmd = r.home.Update(msg)
	case searchView:
		_, cmd = r.search.Update(msg)
	case browseView:
		_, cmd = r.browse.Update(msg)
	case storeView:
		_, cmd = r.store.Update(msg)
	case profileView:
		_, cmd = r.profile.Update(msg)
	case adminView:
		_, cmd = r.admin.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	case readerView:
		if r.reader != nil {
			_, cmd = r.reader.Update(msg)
		}
	}
	return cmd
}

func (r *RootScreen) broadcast(msg tea.Msg) tea.Cmd {
	models := []tea.Model{r.home, r.search, r.browse, r.store, r.profile, r.admin}
	if r.details != nil {
		models = append(models, r.details)
	}
	if r.reader != nil {
		models = append(models, r.reader)
	}
	cmds := make([]tea.Cmd, 0, len(models))
	for _, m := range models {
		_, cmd := m.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) screen(v screenType) tea.Model {
	switch v {
	case homeView:
		return r.home
	case searchView:
		return r.search
	case browseView:
		return r.browse
	case storeView:
		return r.store
	case profileView:
		return r.profile
	case adminView:
		return r.admin
	case detailsView:
		if r.details != nil {
			return r.details
		}
	case readerView:
		if r.reader != nil {
			return r.reader
		}
	}
	return nil
}

// leave tells a screen it is no longer shown so it can cancel its work.
func (r *RootScreen) leave(v screenType) tea.Cmd {
	if l, ok := r.screen(v).(leaver); ok {
		return l.Leave()
	}
	return nil
}

func (r *RootScreen) cycle(step int) tea.Cmd {
	tabs := r.tabs()
	i := 0
	for j, t := range tabs {
		if t == r.currentView {
			i = j
		}
	}
	next := tabs[((i+step)%len(tabs)+len(tabs))%len(tabs)]
	return r.switchTo(next, nil)
}

func (r *RootScreen) switchTo(v screenType, data interface{}) tea.Cmd {
	if v == adminView && !r.deps.State.AdminMode() {
		return nil
	}
	cmds := []tea.Cmd{r.leave(r.currentView)}
	r.reader = nil
	r.details = nil
	r.currentView = v

	query, _ := data.(string)
	switch v {
	case searchView:
		if data != nil {
			cmds = append(cmds, r.search.SetQuery(query))
		}
		cmds = append(cmds, r.search.Focus())
	case browseView:
		if data != nil {
			r.browse.SetSearchFilter(query)
		}
		cmds = append(cmds, r.browse.Init())
	case adminView:
		cmds = append(cmds, r.admin.Init())
	}
	return tea.Batch(cmds...)
}

// Fullscreen reports whether the tab bar is hidden.
func (r *RootScreen) Fullscreen() bool {
	return r.currentView == readerView && r.reader != nil && r.reader.Fullscreen()
}

func (r *RootScreen) View() string {
	var content string
	if m := r.screen(r.currentView); m != nil {
		content = m.View()
	}

	if r.Fullscreen() {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	theme := r.deps.Theme
	var rendered []string
	for _, t := range r.tabs() {
		name := strings.ToUpper(tabNames[t][:1]) + tabNames[t][1:]
		active := t == r.currentView || (!r.isTab(r.currentView) && t == r.lastTab)
		if active {
			rendered = append(rendered, theme.ActiveTab.Render(name))
		} else {
			rendered = append(rendered, theme.InactiveTab.Render(name))
		}
	}

	status := theme.Muted.Render(fmt.Sprintf("  %d coins", r.deps.State.Balance()))
	if r.deps.State.AdminMode() {
		status += " " + theme.Badge.Render("ADMIN")
	}
	rendered = append(rendered, status)
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
