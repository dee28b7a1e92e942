package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/data"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	TabActive  lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:    lipgloss.Color("#FF6B9D"),
		Secondary:  lipgloss.Color("#C792EA"),
		Success:    lipgloss.Color("#C3E88D"),
		Warning:    lipgloss.Color("#FFCB6B"),
		Error:      lipgloss.Color("#F07178"),
		Info:       lipgloss.Color("#82AAFF"),
		Muted:      lipgloss.Color("#546E7A"),
		Background: lipgloss.Color("#263238"),
		Foreground: lipgloss.Color("#EEFFFF"),
		TabActive:  lipgloss.Color("#37474F"),
	}

	LightPalette = Palette{
		Primary:    lipgloss.Color("#D6336C"),
		Secondary:  lipgloss.Color("#7048E8"),
		Success:    lipgloss.Color("#2F9E44"),
		Warning:    lipgloss.Color("#E67700"),
		Error:      lipgloss.Color("#C92A2A"),
		Info:       lipgloss.Color("#1971C2"),
		Muted:      lipgloss.Color("#868E96"),
		Background: lipgloss.Color("#F8F9FA"),
		Foreground: lipgloss.Color("#212529"),
		TabActive:  lipgloss.Color("#E9ECEF"),
	}

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Theme holds every style the screens render with.
type Theme struct {
	Name    string
	Palette Palette

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Text          lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	Card          lipgloss.Style
	ActiveCard    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	ProgressBar   lipgloss.Style
	ProgressEmpty lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	Help          lipgloss.Style
	Input         lipgloss.Style
	FocusedInput  lipgloss.Style
	Badge         lipgloss.Style
}

func Dark() Theme  { return build("dark", DarkPalette) }
func Light() Theme { return build("light", LightPalette) }

// ForName returns the light theme for "light" and the dark one otherwise.
func ForName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

func build(name string, p Palette) Theme {
	return Theme{
		Name:    name,
		Palette: p,

		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Italic(true),
		Text:  lipgloss.NewStyle().Foreground(p.Foreground),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),
		Selected: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			BorderStyle(RoundedBorder).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(p.Secondary).
			Padding(0, 2),
		ActiveCard: lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(p.Primary).
			Padding(0, 2),

		StatusInfo:    lipgloss.NewStyle().Foreground(p.Info).Bold(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		ProgressBar:   lipgloss.NewStyle().Foreground(p.Primary),
		ProgressEmpty: lipgloss.NewStyle().Foreground(p.Muted),

		ActiveTab: lipgloss.NewStyle().
			Foreground(p.Primary).
			Background(p.TabActive).
			Padding(0, 2).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			MarginTop(1),
		Input: lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		FocusedInput: lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Warning).
			Padding(0, 1).
			Bold(true),
	}
}

// StatusStyle colors a publication status.
func (t Theme) StatusStyle(status data.Status) lipgloss.Style {
	switch status {
	case data.StatusOngoing:
		return t.StatusSuccess
	case data.StatusCompleted:
		return t.StatusInfo
	case data.StatusHiatus:
		return t.StatusWarning
	default:
		return t.Muted
	}
}
