package theme

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors. Settings may override the three brand
// colors of a palette.
type Palette struct {
	Name      string
	Primary   string
	Secondary string
	Accent    string
	BgDark    string
	BgCard    string
	Border    string
}

// Palettes are the built-in themes.
var Palettes = map[string]Palette{
	"space": {
		Name: "space", Primary: "#6366F1", Secondary: "#EC4899", Accent: "#10B981",
		BgDark: "#0F172A", BgCard: "#1E293B", Border: "#334155",
	},
	"jungle": {
		Name: "jungle", Primary: "#16A34A", Secondary: "#CA8A04", Accent: "#F97316",
		BgDark: "#052E16", BgCard: "#14532D", Border: "#3F6212",
	},
	"ocean": {
		Name: "ocean", Primary: "#0EA5E9", Secondary: "#14B8A6", Accent: "#F59E0B",
		BgDark: "#082F49", BgCard: "#0C4A6E", Border: "#155E75",
	},
}

// DefaultPalette is used for unknown theme names.
const DefaultPalette = "space"

// Names returns the palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(Palettes))
	for n := range Palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Colors in use. Apply replaces the themed ones.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#FACC15")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles derived from the colors.
var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Gem        lipgloss.Style
)

var current = DefaultPalette

func init() {
	Apply(DefaultPalette, "", "", "")
}

// Apply switches to the named palette. Non-empty primary, secondary and
// accent override the palette's brand colors.
func Apply(name, primary, secondary, accent string) {
	p, ok := Palettes[name]
	if !ok {
		p = Palettes[DefaultPalette]
	}
	current = p.Name

	Primary = lipgloss.Color(orDefault(primary, p.Primary))
	Secondary = lipgloss.Color(orDefault(secondary, p.Secondary))
	Accent = lipgloss.Color(orDefault(accent, p.Accent))
	BgDark = lipgloss.Color(p.BgDark)
	BgCard = lipgloss.Color(p.BgCard)
	Border = lipgloss.Color(p.Border)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Gem = lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

// Current returns the name of the active palette.
func Current() string { return current }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
