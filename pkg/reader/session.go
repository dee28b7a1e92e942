// Package reader holds the navigation state of one open chapter.
package reader

import (
	"errors"
	"fmt"
)

const (
	MinZoom     = 50
	MaxZoom     = 200
	DefaultZoom = 100
	ZoomStep    = 10
)

var ErrNoPages = errors.New("chapter has no pages")

type Mode int

const (
	ModePaged Mode = iota
	ModeVerticalGaps
	ModeVerticalNoGaps
)

var Modes = []Mode{ModePaged, ModeVerticalGaps, ModeVerticalNoGaps}

func (m Mode) String() string {
	switch m {
	case ModePaged:
		return "paged"
	case ModeVerticalGaps:
		return "vertical"
	case ModeVerticalNoGaps:
		return "vertical-no-gaps"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Vertical modes render the whole chapter at once.
func (m Mode) Vertical() bool {
	return m == ModeVerticalGaps || m == ModeVerticalNoGaps
}

// State is a snapshot of a session.
type State struct {
	ChapterID  string
	Page       int
	PageCount  int
	Zoom       int
	UIVisible  bool
	Mode       Mode
	Fullscreen bool
}

func (s State) AtFirstPage() bool { return s.Page <= 1 }
func (s State) AtLastPage() bool  { return s.Page >= s.PageCount }

// PageSlot is one page to render.
type PageSlot struct {
	Number int
	Ref    string
	Gap    bool
}

// Session is the state machine of an open reader view. It is driven by a
// single actor and is not safe for concurrent use.
type Session struct {
	pages     []string
	state     State
	observers map[int]func(State)
	nextObs   int
}

func NewSession(chapterID string, pages []string) (*Session, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPages, chapterID)
	}
	refs := make([]string, len(pages))
	copy(refs, pages)

	return &Session{
		pages: refs,
		state: State{
			ChapterID: chapterID,
			Page:      1,
			PageCount: len(refs),
			Zoom:      DefaultZoom,
			UIVisible: true,
			Mode:      ModePaged,
		},
		observers: make(map[int]func(State)),
	}, nil
}

func (s *Session) State() State {
	return s.state
}

// CurrentPage returns the reference of the page at the current index.
func (s *Session) CurrentPage() string {
	return s.pages[s.state.Page-1]
}

// Dispatch applies ev and notifies observers when the state changed.
func (s *Session) Dispatch(ev Event) bool {
	before := s.state
	ev.apply(&s.state)
	if s.state == before {
		return false
	}
	for _, fn := range s.observers {
		fn(s.state)
	}
	return true
}

// Subscribe registers fn to be called after every state change.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// Layout lists the pages to render in the current mode.
func (s *Session) Layout() []PageSlot {
	if !s.state.Mode.Vertical() {
		return []PageSlot{{Number: s.state.Page, Ref: s.CurrentPage()}}
	}

	gap := s.state.Mode == ModeVerticalGaps
	slots := make([]PageSlot, len(s.pages))
	for i, ref := range s.pages {
		slots[i] = PageSlot{Number: i + 1, Ref: ref, Gap: gap && i < len(s.pages)-1}
	}
	return slots
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
