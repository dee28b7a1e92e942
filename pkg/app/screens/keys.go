package screens

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds the bindings handled by the root screen.
type GlobalKeyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	ToggleTheme key.Binding
	ToggleAdmin key.Binding
	Quit        key.Binding
}

func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^t", "theme"),
		),
		ToggleAdmin: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("^a", "admin mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
	}
}

// ReaderKeyMap is the keyboard contract of the reader.
type ReaderKeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	First       key.Binding
	Last        key.Binding
	Fullscreen  key.Binding
	ToggleUI    key.Binding
	ShowUI      key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ModePaged   key.Binding
	ModeGaps    key.Binding
	ModeNoGaps  key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Help        key.Binding
	Close       key.Binding
}

func DefaultReaderKeyMap() ReaderKeyMap {
	return ReaderKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "a", "A"),
			key.WithHelp("←/a", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "d", "D", " ", "space"),
			key.WithHelp("→/d/space", "next page"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f", "F"),
			key.WithHelp("f", "fullscreen"),
		),
		ToggleUI: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "hide ui"),
		),
		ShowUI: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "show ui"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ModePaged: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "paged"),
		),
		ModeGaps: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "vertical"),
		),
		ModeNoGaps: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "no gaps"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev chapter"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ReaderKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.ToggleUI, k.Fullscreen, k.Help, k.Close}
}

// FullHelp implements help.KeyMap.
func (k ReaderKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.ZoomIn, k.ZoomOut, k.ModePaged, k.ModeGaps, k.ModeNoGaps},
		{k.ToggleUI, k.ShowUI, k.Fullscreen},
		{k.PrevChapter, k.NextChapter, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Close},
	}
}

// ListKeyMap is shared by the screens that move a selection.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Back   key.Binding
	Search key.Binding
}

func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}
