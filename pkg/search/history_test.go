package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistorySeedKeepsOrder(t *testing.T) {
	h := NewHistory(5, "Solo Leveling", "Tower of God")
	assert.Equal(t, []string{"Solo Leveling", "Tower of God"}, h.Entries())
}

func TestHistoryMovesRepeatsToFront(t *testing.T) {
	h := NewHistory(5, "Solo Leveling", "Tower of God")

	h.Add("tower of god")
	assert.Equal(t, []string{"tower of god", "Solo Leveling"}, h.Entries())
}

func TestHistoryIgnoresBlank(t *testing.T) {
	h := NewHistory(5)
	h.Add("  ")
	assert.Empty(t, h.Entries())
}

func TestHistoryIsCapped(t *testing.T) {
	h := NewHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	assert.Equal(t, []string{"c", "b"}, h.Entries())

	h.Clear()
	assert.Empty(t, h.Entries())
}

func TestHistoryDefaultLimit(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 20; i++ {
		h.Add(string(rune('a' + i)))
	}
	assert.Len(t, h.Entries(), DefaultMaxRecent)
}
