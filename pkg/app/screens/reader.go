package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/app/components"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"go.uber.org/zap"
)

// ReaderScreen shows one chapter at a time. All navigation goes through a
// reader.Session; this screen only maps input to events and renders.
type ReaderScreen struct {
	deps Deps
	keys ReaderKeyMap
	help help.Model

	chapterID   string
	startPage   int
	session     *reader.Session
	unsubscribe func()
	entry       *data.Entry
	chapters    []data.Chapter
	chapterIdx  int

	viewport viewport.Model
	dirty    bool

	width  int
	height int
	err    error
}

func NewReaderScreen(deps Deps, chapterID string, page int) *ReaderScreen {
	if page < 1 {
		page = 1
	}
	return &ReaderScreen{
		deps:      deps,
		keys:      DefaultReaderKeyMap(),
		help:      help.New(),
		chapterID: chapterID,
		startPage: page,
		viewport:  viewport.New(80, 20),
		width:     80,
		height:    24,
	}
}

func (r *ReaderScreen) Init() tea.Cmd {
	return r.loadChapter(r.chapterID, r.startPage)
}

// Session is the state machine of the open chapter, nil while loading.
func (r *ReaderScreen) Session() *reader.Session {
	return r.session
}

func (r *ReaderScreen) Fullscreen() bool {
	return r.session != nil && r.session.State().Fullscreen
}

// Leave drops the session.
func (r *ReaderScreen) Leave() tea.Cmd {
	r.detach()
	return nil
}

func (r *ReaderScreen) detach() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.session = nil
}

func (r *ReaderScreen) attach(s *reader.Session) {
	r.detach()
	r.session = s
	r.unsubscribe = s.Subscribe(func(st reader.State) {
		r.dirty = true
		r.deps.Logger.Debug("Reader state changed",
			zap.String("chapter", st.ChapterID),
			zap.Int("page", st.Page),
			zap.Int("zoom", st.Zoom),
			zap.Stringer("mode", st.Mode),
		)
	})
	r.dirty = true
}

func (r *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.dirty = true

	case readerLoadedMsg:
		if msg.chapterID != r.chapterID {
			return r, nil
		}
		r.err = msg.err
		if msg.err != nil {
			r.detach()
			break
		}
		r.entry = msg.entry
		r.chapters = msg.chapters
		r.chapterIdx = msg.chapterIdx
		r.attach(msg.session)
		if msg.page > 1 {
			r.session.Dispatch(reader.JumpTo{Page: msg.page})
		}
		r.viewport.GotoTop()

	case tea.KeyMsg:
		cmd = r.handleKey(msg)

	case tea.MouseMsg:
		if r.session == nil {
			break
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			r.session.Dispatch(reader.Click{X: msg.X, Width: r.width})
		} else if r.session.State().Mode.Vertical() {
			r.viewport, cmd = r.viewport.Update(msg)
		}
	}

	if r.dirty {
		r.refreshViewport()
	}
	return r, cmd
}

func (r *ReaderScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, r.keys.Close) {
		r.detach()
		return func() tea.Msg { return BackMsg{} }
	}
	if r.session == nil {
		if msg.String() == "esc" {
			return func() tea.Msg { return BackMsg{} }
		}
		return nil
	}

	switch {
	case key.Matches(msg, r.keys.Help):
		r.help.ShowAll = !r.help.ShowAll
		r.dirty = true
		return nil
	case key.Matches(msg, r.keys.NextChapter):
		return r.openChapter(r.chapterIdx + 1)
	case key.Matches(msg, r.keys.PrevChapter):
		return r.openChapter(r.chapterIdx - 1)
	}

	if r.session.State().Mode.Vertical() {
		switch {
		case key.Matches(msg, r.keys.ScrollDown), key.Matches(msg, r.keys.Next):
			r.viewport.LineDown(1)
			return nil
		case key.Matches(msg, r.keys.ScrollUp), key.Matches(msg, r.keys.Prev):
			r.viewport.LineUp(1)
			return nil
		case key.Matches(msg, r.keys.First):
			r.viewport.GotoTop()
			return nil
		case key.Matches(msg, r.keys.Last):
			r.viewport.GotoBottom()
			return nil
		}
	}

	if ev := r.eventFor(msg); ev != nil {
		r.session.Dispatch(ev)
	}
	return nil
}

// eventFor maps a key to a reader event following the keyboard contract.
func (r *ReaderScreen) eventFor(msg tea.KeyMsg) reader.Event {
	k := r.keys
	switch {
	case key.Matches(msg, k.Prev):
		return reader.Prev{}
	case key.Matches(msg, k.Next):
		return reader.Next{}
	case key.Matches(msg, k.First):
		return reader.JumpTo{Page: 1}
	case key.Matches(msg, k.Last):
		return reader.JumpTo{Page: r.session.State().PageCount}
	case key.Matches(msg, k.Fullscreen):
		return reader.ToggleFullscreen{}
	case key.Matches(msg, k.ToggleUI):
		return reader.ToggleUI{}
	case key.Matches(msg, k.ShowUI):
		return reader.ShowUI{}
	case key.Matches(msg, k.ZoomIn):
		return reader.Zoom{Delta: reader.ZoomStep}
	case key.Matches(msg, k.ZoomOut):
		return reader.Zoom{Delta: -reader.ZoomStep}
	case key.Matches(msg, k.ModePaged):
		return reader.SetMode{Mode: reader.ModePaged}
	case key.Matches(msg, k.ModeGaps):
		return reader.SetMode{Mode: reader.ModeVerticalGaps}
	case key.Matches(msg, k.ModeNoGaps):
		return reader.SetMode{Mode: reader.ModeVerticalNoGaps}
	}
	return nil
}

// openChapter discards the session and loads chapter i of the entry.
// Out-of-range chapters are ignored.
func (r *ReaderScreen) openChapter(i int) tea.Cmd {
	if i < 0 || i >= len(r.chapters) {
		return nil
	}
	r.detach()
	r.chapterID = r.chapters[i].ID
	r.chapterIdx = i
	return r.loadChapter(r.chapterID, 1)
}

func (r *ReaderScreen) pageAreaHeight() int {
	h := r.height - 2
	if !r.Fullscreen() {
		h -= contentTop
	}
	if r.session != nil && r.session.State().UIVisible {
		h -= lipgloss.Height(r.header()) + lipgloss.Height(r.footer())
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (r *ReaderScreen) refreshViewport() {
	r.dirty = false
	if r.session == nil {
		return
	}
	r.viewport.Width = r.width
	r.viewport.Height = r.pageAreaHeight()
	if r.session.State().Mode.Vertical() {
		r.viewport.SetContent(r.renderStrip())
	}
}

func (r *ReaderScreen) pageWidth() int {
	zoom := r.session.State().Zoom
	w := (r.width / 2) * zoom / 100
	if w > r.width-2 {
		w = r.width - 2
	}
	if w < 12 {
		w = 12
	}
	return w
}

func (r *ReaderScreen) renderPage(slot reader.PageSlot, height int) string {
	theme := r.deps.Theme
	w := r.pageWidth()
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.UnsetMarginBottom().Render(fmt.Sprintf("Page %d", slot.Number)),
		theme.Muted.Render(components.Truncate(slot.Ref, w-4)),
	)
	return theme.Card.
		Width(w).
		Height(height).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(body)
}

// renderStrip lays out every page of a vertical mode.
func (r *ReaderScreen) renderStrip() string {
	var b strings.Builder
	pageHeight := 6 * r.session.State().Zoom / 100
	for _, slot := range r.session.Layout() {
		b.WriteString(lipgloss.PlaceHorizontal(r.width, lipgloss.Center, r.renderPage(slot, pageHeight)))
		b.WriteString("\n")
		if slot.Gap {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *ReaderScreen) header() string {
	theme := r.deps.Theme
	st := r.session.State()

	title := "Reader"
	if r.entry != nil {
		title = r.entry.Title
	}
	chapter := st.ChapterID
	if r.chapterIdx < len(r.chapters) {
		chapter = r.chapters[r.chapterIdx].Label()
	}
	info := theme.Muted.Render(fmt.Sprintf("%s • zoom %d%% • %s", chapter, st.Zoom, st.Mode))
	return lipgloss.JoinVertical(lipgloss.Left, theme.Title.UnsetMarginBottom().Render(title), info)
}

func (r *ReaderScreen) footer() string {
	theme := r.deps.Theme
	st := r.session.State()

	status := fmt.Sprintf("Page %d of %d", st.Page, st.PageCount)
	switch {
	case st.AtLastPage():
		status += " • last page, n: next chapter"
	case st.AtFirstPage():
		status += " • first page"
	}
	if st.Mode.Vertical() {
		status = fmt.Sprintf("%d pages • %.0f%%", st.PageCount, r.viewport.ScrollPercent()*100)
	}
	bar := components.SimpleProgress(theme, st.Page, st.PageCount, r.width-4)
	return lipgloss.JoinVertical(lipgloss.Left,
		bar,
		theme.Subtitle.Render(status),
		r.help.View(r.keys),
	)
}

func (r *ReaderScreen) View() string {
	theme := r.deps.Theme
	if r.err != nil {
		return theme.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n\n" +
			theme.Help.Render("q: close")
	}
	if r.session == nil {
		return "Loading..."
	}

	st := r.session.State()
	var page string
	if st.Mode.Vertical() {
		page = r.viewport.View()
	} else {
		area := r.pageAreaHeight()
		height := area*st.Zoom/100 - 2
		if height < 3 {
			height = 3
		}
		page = lipgloss.Place(r.width, area, lipgloss.Center, lipgloss.Center,
			r.renderPage(r.session.Layout()[0], height))
	}

	if !st.UIVisible {
		return page
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.header(), page, r.footer())
}

// Messages
type readerLoadedMsg struct {
	chapterID  string
	page       int
	session    *reader.Session
	entry      *data.Entry
	chapters   []data.Chapter
	chapterIdx int
	err        error
}

// Commands
func (r *ReaderScreen) loadChapter(chapterID string, page int) tea.Cmd {
	controller := r.deps.Controller
	return func() tea.Msg {
		ctx := context.Background()
		msg := readerLoadedMsg{chapterID: chapterID, page: page}

		entryID, number, err := sources.ParseChapterID(chapterID)
		if err != nil {
			msg.err = err
			return msg
		}
		if msg.entry, msg.err = controller.GetManga(ctx, entryID); msg.err != nil {
			return msg
		}
		if msg.chapters, msg.err = controller.Chapters(ctx, entryID); msg.err != nil {
			return msg
		}
		msg.chapterIdx = number - 1
		msg.session, msg.err = controller.OpenChapter(ctx, chapterID)
		return msg
	}
}
