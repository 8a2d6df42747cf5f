package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// One color per cognitive level, cool to warm.
var levelColors = map[cognition.Level]color.Color{
	cognition.LevelRemember:   lipgloss.Color("#60A5FA"),
	cognition.LevelUnderstand: lipgloss.Color("#2DD4BF"),
	cognition.LevelApply:      lipgloss.Color("#4ADE80"),
	cognition.LevelAnalyze:    lipgloss.Color("#FACC15"),
	cognition.LevelEvaluate:   lipgloss.Color("#FB923C"),
}

// LevelColor returns the display color of a cognitive level.
func LevelColor(l cognition.Level) color.Color {
	return levelColors[cognition.ClampLevel(l)]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Secondary).
		Background(BgDark).
		Padding(0, 1)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)
