package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestReader(t *testing.T, entryID string, chapter, page int) (*ReaderScreen, Deps) {
	t.Helper()
	deps := newTestDeps(t)
	r := NewReaderScreen(deps, sources.ChapterID(entryID, chapter), page)
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	r.Update(run(r.Init()))
	require.NotNil(t, r.Session())
	return r, deps
}

func TestReaderPagedNavigation(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)

	r.Update(keyMsg("right"))
	r.Update(keyMsg("d"))
	assert.Equal(t, 3, r.Session().State().Page)

	r.Update(keyMsg("left"))
	assert.Equal(t, 2, r.Session().State().Page)

	r.Update(keyMsg("G"))
	st := r.Session().State()
	assert.Equal(t, st.PageCount, st.Page)

	r.Update(keyMsg("right"))
	assert.Equal(t, st.PageCount, r.Session().State().Page, "next stops at the last page")

	r.Update(keyMsg("g"))
	assert.Equal(t, 1, r.Session().State().Page)
}

func TestReaderFooterMarksBoundaries(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)
	assert.Contains(t, r.footer(), "first page")

	r.Update(keyMsg("right"))
	assert.NotContains(t, r.footer(), "first page")
	assert.NotContains(t, r.footer(), "last page")

	r.Update(keyMsg("G"))
	assert.Contains(t, r.footer(), "last page, n: next chapter")
}

func TestReaderOpensAtPage(t *testing.T) {
	r, _ := openTestReader(t, "2", 3, 7)
	assert.Equal(t, 7, r.Session().State().Page)
	assert.Contains(t, r.View(), "7")
}

func TestReaderToggles(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)

	r.Update(keyMsg("h"))
	assert.False(t, r.Session().State().UIVisible)
	r.Update(keyMsg("esc"))
	assert.True(t, r.Session().State().UIVisible)

	r.Update(keyMsg("f"))
	assert.True(t, r.Fullscreen())
	r.Update(keyMsg("f"))
	assert.False(t, r.Fullscreen())

	zoom := r.Session().State().Zoom
	r.Update(keyMsg("+"))
	assert.Equal(t, zoom+reader.ZoomStep, r.Session().State().Zoom)
	r.Update(keyMsg("-"))
	assert.Equal(t, zoom, r.Session().State().Zoom)
}

func TestReaderVerticalModeScrolls(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)

	r.Update(keyMsg("2"))
	require.Equal(t, reader.ModeVerticalGaps, r.Session().State().Mode)

	r.Update(keyMsg("right"))
	assert.Equal(t, 1, r.Session().State().Page, "page index is fixed in vertical mode")
	assert.Greater(t, r.viewport.YOffset, 0)

	r.Update(keyMsg("G"))
	assert.True(t, r.viewport.AtBottom())
	r.Update(keyMsg("g"))
	assert.True(t, r.viewport.AtTop())

	r.Update(keyMsg("1"))
	assert.Equal(t, reader.ModePaged, r.Session().State().Mode)
}

func TestReaderClickHotzones(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)

	r.Update(tea.MouseMsg{X: 90, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, r.Session().State().Page)

	r.Update(tea.MouseMsg{X: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, r.Session().State().Page)

	r.Update(keyMsg("h"))
	r.Update(tea.MouseMsg{X: 90, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, r.Session().State().UIVisible)
	assert.Equal(t, 1, r.Session().State().Page, "a click on hidden UI only reveals it")
}

func TestReaderNextChapter(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)
	r.Update(keyMsg("right"))

	assert.Nil(t, r.handleKey(keyMsg("p")), "no chapter before the first")
	require.NotNil(t, r.Session())

	cmd := r.handleKey(keyMsg("n"))
	require.NotNil(t, cmd)
	assert.Nil(t, r.Session(), "session is discarded while the next chapter loads")

	r.Update(cmd())
	require.NotNil(t, r.Session())
	assert.Equal(t, sources.ChapterID("1", 2), r.Session().State().ChapterID)
	assert.Equal(t, 1, r.Session().State().Page)
}

func TestReaderIgnoresStaleLoad(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)
	stale := run(NewReaderScreen(r.deps, sources.ChapterID("4", 1), 1).Init())

	r.Update(stale)
	assert.Equal(t, sources.ChapterID("1", 1), r.Session().State().ChapterID)
}

func TestReaderCloseSendsBack(t *testing.T) {
	r, _ := openTestReader(t, "1", 1, 1)

	msg := run(r.handleKey(keyMsg("q")))
	assert.IsType(t, BackMsg{}, msg)
	assert.Nil(t, r.Session())
}

func TestReaderUnknownChapter(t *testing.T) {
	deps := newTestDeps(t)
	r := NewReaderScreen(deps, sources.ChapterID("1", 9999), 1)
	r.Update(run(r.Init()))

	assert.Nil(t, r.Session())
	assert.Error(t, r.err)
}
