package search

import "strings"

const DefaultMaxRecent = 10

// Suggestions are shown while no query is active.
type Suggestions struct {
	Recent   []string
	Trending []string
}

// History keeps submitted queries, most recent first.
type History struct {
	max     int
	entries []string
}

func NewHistory(limit int, seed ...string) *History {
	if limit <= 0 {
		limit = DefaultMaxRecent
	}
	h := &History{max: limit}
	for i := len(seed) - 1; i >= 0; i-- {
		h.Add(seed[i])
	}
	return h
}

// Add records a submitted query. Blank queries are dropped and an existing
// entry that differs only in case moves to the front.
func (h *History) Add(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}

	kept := make([]string, 0, h.max)
	kept = append(kept, q)
	for _, e := range h.entries {
		if strings.EqualFold(e, q) {
			continue
		}
		if len(kept) == h.max {
			break
		}
		kept = append(kept, e)
	}
	h.entries = kept
}

func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Clear() {
	h.entries = nil
}
