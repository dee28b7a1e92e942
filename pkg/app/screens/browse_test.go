package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedBrowse(t *testing.T) *BrowseScreen {
	t.Helper()
	s := NewBrowseScreen(newTestDeps(t))
	s.Update(s.loadGenres())
	s.Update(run(s.loadCmd()))
	return s
}

// press sends a key and applies the reload it triggers.
func press(s *BrowseScreen, k string) {
	_, cmd := s.Update(keyMsg(k))
	if msg := run(cmd); msg != nil {
		s.Update(msg)
	}
}

func TestBrowseListsWholeCatalog(t *testing.T) {
	s := loadedBrowse(t)

	require.Len(t, s.entries, 6)
	assert.Equal(t, "1", s.entries[0].ID, "most recently updated first")
	assert.NotEmpty(t, s.genres)
}

func TestBrowseStatusFilter(t *testing.T) {
	s := loadedBrowse(t)

	press(s, "s")
	assert.Equal(t, data.StatusOngoing, s.Query().Status)
	assert.Len(t, s.entries, 4)

	press(s, "s")
	require.Len(t, s.entries, 1)
	assert.Equal(t, "5", s.entries[0].ID)

	press(s, "x")
	assert.Len(t, s.entries, 6)
}

func TestBrowseGenreFilter(t *testing.T) {
	s := loadedBrowse(t)

	press(s, "g")
	require.NotEmpty(t, s.Query().Genre)
	for _, e := range s.entries {
		assert.Contains(t, e.Genres, s.Query().Genre)
	}
}

func TestBrowseSortCycle(t *testing.T) {
	s := loadedBrowse(t)

	press(s, "o")
	assert.Equal(t, data.SortTitle, s.Query().Sort)
	assert.Equal(t, "Attack on Titan", s.entries[0].Title)
}

func TestBrowseSearchFilter(t *testing.T) {
	deps := newTestDeps(t)
	s := NewBrowseScreen(deps)
	s.SetSearchFilter("fantasy")

	s.Update(run(s.loadCmd()))

	assert.Equal(t, data.SortCatalog, s.Query().Sort)
	assert.Equal(t, deps.Controller.Search("fantasy").Entries, s.entries)
	assert.Contains(t, s.View(), `search: "fantasy"`)

	// alt titles match too
	s.SetSearchFilter("shingeki")
	s.Update(run(s.loadCmd()))
	require.Len(t, s.entries, 1)
	assert.Equal(t, "Attack on Titan", s.entries[0].Title)

	// cycling sort leaves the catalog key and wraps to the first
	press(s, "o")
	assert.Equal(t, data.SortKeys[0], s.Query().Sort)

	s.SetSearchFilter(" ")
	assert.Equal(t, data.BrowseQuery{Sort: data.SortUpdated}, s.Query())
}

func TestBrowseIgnoresStaleLoad(t *testing.T) {
	s := loadedBrowse(t)
	stale := run(s.loadCmd())

	press(s, "s")
	s.Update(stale)

	assert.Len(t, s.entries, 4)
}

func TestBrowseEnterOpensDetails(t *testing.T) {
	s := loadedBrowse(t)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, OpenDetailsMsg{EntryID: s.entries[0].ID}, run(cmd))
}

func TestFormatViews(t *testing.T) {
	assert.Equal(t, "12.5M", formatViews(12_500_000))
	assert.Equal(t, "980.0K", formatViews(980_000))
	assert.Equal(t, "42", formatViews(42))
}
