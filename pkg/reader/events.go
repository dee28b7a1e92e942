package reader

// Event is a user intent applied to a Session.
type Event interface {
	apply(*State)
}

type (
	Next             struct{}
	Prev             struct{}
	JumpTo           struct{ Page int }
	ToggleUI         struct{}
	ShowUI           struct{}
	Zoom             struct{ Delta int }
	SetMode          struct{ Mode Mode }
	ToggleFullscreen struct{}

	// Click is a pointer press at column X of a page area Width columns wide.
	Click struct{ X, Width int }
)

// Page-index navigation only applies to paged mode.

func (Next) apply(s *State) {
	if s.Mode.Vertical() {
		return
	}
	s.Page = clamp(s.Page+1, 1, s.PageCount)
}

func (Prev) apply(s *State) {
	if s.Mode.Vertical() {
		return
	}
	s.Page = clamp(s.Page-1, 1, s.PageCount)
}

func (e JumpTo) apply(s *State) {
	if s.Mode.Vertical() {
		return
	}
	s.Page = clamp(e.Page, 1, s.PageCount)
}

func (ToggleUI) apply(s *State) { s.UIVisible = !s.UIVisible }

func (ShowUI) apply(s *State) { s.UIVisible = true }

func (e Zoom) apply(s *State) {
	s.Zoom = clamp(s.Zoom+e.Delta, MinZoom, MaxZoom)
}

func (e SetMode) apply(s *State) {
	switch e.Mode {
	case ModePaged, ModeVerticalGaps, ModeVerticalNoGaps:
		s.Mode = e.Mode
	}
}

func (ToggleFullscreen) apply(s *State) { s.Fullscreen = !s.Fullscreen }

// A click while the UI is hidden only reveals it.
func (e Click) apply(s *State) {
	if !s.UIVisible {
		s.UIVisible = true
		return
	}
	switch HotzoneAt(e.X, e.Width) {
	case HotzonePrev:
		Prev{}.apply(s)
	case HotzoneNext:
		Next{}.apply(s)
	}
}

type Hotzone int

const (
	HotzoneNone Hotzone = iota
	HotzonePrev
	HotzoneNext
)

// HotzoneAt splits the page area in thirds: left goes back, right goes
// forward and the middle does nothing.
func HotzoneAt(x, width int) Hotzone {
	if width <= 0 || x < 0 || x >= width {
		return HotzoneNone
	}
	third := width / 3
	switch {
	case x < third:
		return HotzonePrev
	case x >= width-third:
		return HotzoneNext
	}
	return HotzoneNone
}
