package screens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileOverviewStats(t *testing.T) {
	deps := newTestDeps(t)
	_, err := deps.State.Purchase(context.Background(), "reader@example.com")
	require.NoError(t, err)
	deps.State.ToggleLike("6")
	deps.State.ToggleBookmark("3")
	deps.State.ToggleBookmark("1")

	s := NewProfileScreen(deps)
	view := s.View()

	assert.Contains(t, view, "Total Purchased")
	assert.Contains(t, view, "$3.00 total spent")
	assert.Contains(t, view, "Available Coins")
	assert.Contains(t, view, `Liked "Jujutsu Kaisen"`)
	assert.Contains(t, view, `Bookmarked "Solo Leveling"`)
	assert.Contains(t, view, "Purchased 50 coins")
}

func TestProfileSectionsCycle(t *testing.T) {
	s := NewProfileScreen(newTestDeps(t))

	for _, want := range []profileTab{purchasedTab, likedTab, bookmarkedTab, overviewTab} {
		s.Update(keyMsg("right"))
		assert.Equal(t, want, s.tab)
	}
	s.Update(keyMsg("left"))
	assert.Equal(t, bookmarkedTab, s.tab)
	assert.Contains(t, s.View(), "No bookmarks yet")
}

func TestProfilePurchasedLists(t *testing.T) {
	deps := newTestDeps(t)
	s := NewProfileScreen(deps)
	s.tab = purchasedTab
	assert.Contains(t, s.View(), "No purchases yet")

	receipt, err := deps.State.Purchase(context.Background(), "reader@example.com")
	require.NoError(t, err)

	assert.Contains(t, s.View(), "Coin Purchases (1)")
	assert.Contains(t, s.View(), receipt.Reference)
}

func TestProfileLikedOpenAndRemove(t *testing.T) {
	deps := newTestDeps(t)
	deps.State.ToggleLike("2")
	deps.State.ToggleLike("4")
	s := NewProfileScreen(deps)
	s.tab = likedTab

	assert.Contains(t, s.View(), "Liked Manga (2)")

	// newest like first
	s.Update(keyMsg("down"))
	_, cmd := s.Update(keyMsg("enter"))
	assert.Equal(t, OpenDetailsMsg{EntryID: "2"}, run(cmd))

	s.Update(keyMsg("down"))
	assert.Equal(t, 1, s.cursor, "cursor stops at the end")

	s.Update(keyMsg("x"))
	assert.False(t, deps.State.Liked("2"))
	assert.True(t, deps.State.Liked("4"))
	assert.Equal(t, 0, s.cursor)

	s.Update(keyMsg("x"))
	assert.Empty(t, deps.State.Likes())
	assert.Contains(t, s.View(), "No liked manga yet")
}
