package screens

import (
	"testing"

	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) (*RootScreen, Deps) {
	t.Helper()
	deps := newTestDeps(t)
	return NewRootScreen(deps), deps
}

func TestRootCyclesTabs(t *testing.T) {
	r, _ := newTestRoot(t)

	want := []screenType{searchView, browseView, storeView, profileView, homeView}
	for _, v := range want {
		r.Update(keyMsg("tab"))
		assert.Equal(t, v, r.currentView)
	}
}

func TestRootAdminTabNeedsAdminMode(t *testing.T) {
	r, deps := newTestRoot(t)

	r.Update(SwitchScreenMsg{Screen: "admin"})
	assert.Equal(t, homeView, r.currentView)
	assert.NotContains(t, r.View(), "ADMIN")

	r.Update(keyMsg("ctrl+a"))
	require.True(t, deps.State.AdminMode())
	assert.Contains(t, r.tabs(), adminView)
	assert.Contains(t, r.View(), "ADMIN")

	r.Update(SwitchScreenMsg{Screen: "admin"})
	assert.Equal(t, adminView, r.currentView)

	r.Update(keyMsg("ctrl+a"))
	assert.Equal(t, homeView, r.currentView, "leaving admin mode closes the dashboard")
}

func TestRootThemeToggle(t *testing.T) {
	r, deps := newTestRoot(t)

	r.Update(keyMsg("ctrl+t"))

	assert.Equal(t, services.ThemeLight, deps.State.Theme())
	assert.Equal(t, styles.Light().Title.GetForeground(), deps.Theme.Title.GetForeground())
}

func TestRootDetailsAndBack(t *testing.T) {
	r, _ := newTestRoot(t)
	r.Update(keyMsg("tab"))

	r.Update(OpenDetailsMsg{EntryID: "1"})
	assert.Equal(t, detailsView, r.currentView)
	require.NotNil(t, r.details)

	r.Update(OpenReaderMsg{ChapterID: sources.ChapterID("1", 1)})
	assert.Equal(t, readerView, r.currentView)

	r.Update(BackMsg{})
	assert.Equal(t, detailsView, r.currentView)

	r.Update(BackMsg{})
	assert.Equal(t, searchView, r.currentView)
	assert.Nil(t, r.details)
}

func TestRootTabKeysIgnoredInReader(t *testing.T) {
	r, _ := newTestRoot(t)
	r.Update(OpenReaderMsg{ChapterID: sources.ChapterID("1", 1)})

	r.Update(keyMsg("tab"))

	assert.Equal(t, readerView, r.currentView)
}

func TestRootSwitchWithQuery(t *testing.T) {
	r, _ := newTestRoot(t)

	r.Update(SwitchScreenMsg{Screen: "search", Data: "solo"})
	assert.Equal(t, searchView, r.currentView)
	assert.Equal(t, "solo", r.search.Result().Query)

	r.Update(SwitchScreenMsg{Screen: "browse", Data: "solo"})
	assert.Equal(t, "solo", r.browse.Query().Query)
	assert.Empty(t, r.browse.Query().Title)
}

func TestRootViewAllListsEverySearchMatch(t *testing.T) {
	for _, q := range []string{"진격", "shingeki", "action", "orv", "fantasy"} {
		t.Run(q, func(t *testing.T) {
			r, deps := newTestRoot(t)
			r.Update(SwitchScreenMsg{Screen: "search"})
			typeText(r, q)
			r.Update(keyMsg("enter"))

			_, cmd := r.Update(keyMsg("v"))
			msg := run(cmd)
			require.IsType(t, SwitchScreenMsg{}, msg)
			_, cmd = r.Update(msg)
			require.Equal(t, browseView, r.currentView)
			drain(r, cmd)

			want := deps.Controller.Search(q).Entries
			require.NotEmpty(t, want)
			assert.Equal(t, want, r.browse.entries)
		})
	}
}

func TestRootRoutesOperationsByOwner(t *testing.T) {
	r, deps := newTestRoot(t)
	r.Update(SwitchScreenMsg{Screen: "store"})
	r.store.setFocus(payeeField)
	r.store.payee.SetValue("reader@example.com")

	r.Update(keyMsg("enter"))
	require.True(t, r.store.Processing())

	r.Update(nextResult(t, deps))

	assert.False(t, r.store.Processing())
	assert.Len(t, deps.State.Receipts(), 1)
}

func TestRootLeavingStoreCancelsPayment(t *testing.T) {
	r, deps := newTestRoot(t)
	r.Update(SwitchScreenMsg{Screen: "store"})
	r.store.setFocus(payeeField)
	r.store.payee.SetValue("reader@example.com")
	r.Update(keyMsg("enter"))
	require.True(t, r.store.Processing())

	r.Update(keyMsg("tab"))

	assert.Equal(t, profileView, r.currentView)
	assert.False(t, r.store.Processing())
	assert.Nil(t, deps.State.PendingOrder())
}

func TestRootProfileOpensSavedTitle(t *testing.T) {
	r, deps := newTestRoot(t)
	deps.State.ToggleBookmark("2")

	r.Update(SwitchScreenMsg{Screen: "profile"})
	require.Equal(t, profileView, r.currentView)
	assert.Contains(t, r.View(), "Profile")

	r.Update(keyMsg("left"))
	_, cmd := r.Update(keyMsg("enter"))
	r.Update(run(cmd))

	assert.Equal(t, detailsView, r.currentView)
	r.Update(BackMsg{})
	assert.Equal(t, profileView, r.currentView)
}
