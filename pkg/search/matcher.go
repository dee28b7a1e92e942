// Package search filters the catalog by substring over titles, alternate
// titles and genres.
package search

import (
	"strings"

	"github.com/kerbaras/mangaverse/pkg/data"
)

// Result is the outcome of matching a query. An inactive result means no
// filter is applied and callers should show suggestions instead; it is not
// the same as an active result with no entries.
type Result struct {
	Active  bool
	Query   string
	Entries []*data.Entry
}

// Top returns at most limit entries for display and how many were left out.
// The returned slice is a copy; r.Entries stays intact for "view all".
func (r Result) Top(limit int) ([]*data.Entry, int) {
	if limit <= 0 || len(r.Entries) <= limit {
		out := make([]*data.Entry, len(r.Entries))
		copy(out, r.Entries)
		return out, 0
	}
	out := make([]*data.Entry, limit)
	copy(out, r.Entries[:limit])
	return out, len(r.Entries) - limit
}

type indexed struct {
	entry *data.Entry
	terms []string
}

// Matcher holds a lowercased copy of the searchable fields of a catalog.
type Matcher struct {
	index []indexed
}

func NewMatcher(entries []*data.Entry) *Matcher {
	m := &Matcher{index: make([]indexed, 0, len(entries))}
	for _, e := range entries {
		if e == nil {
			continue
		}
		terms := make([]string, 0, 1+len(e.AltTitles)+len(e.Genres))
		terms = append(terms, strings.ToLower(e.Title))
		for _, alt := range e.AltTitles {
			terms = append(terms, strings.ToLower(alt))
		}
		for _, g := range e.Genres {
			terms = append(terms, strings.ToLower(g))
		}
		m.index = append(m.index, indexed{entry: e, terms: terms})
	}
	return m
}

// Len reports the number of indexed entries.
func (m *Matcher) Len() int {
	return len(m.index)
}

// Match keeps catalog order. Surrounding whitespace is ignored and a blank
// query yields an inactive result.
func (m *Matcher) Match(query string) Result {
	q := normalize(query)
	if q == "" {
		return Result{}
	}

	res := Result{Active: true, Query: q, Entries: []*data.Entry{}}
	for _, ix := range m.index {
		for _, term := range ix.terms {
			if strings.Contains(term, q) {
				res.Entries = append(res.Entries, ix.entry)
				break
			}
		}
	}
	return res
}

// Filter is Match over an ad-hoc list.
func Filter(entries []*data.Entry, query string) Result {
	return NewMatcher(entries).Match(query)
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
