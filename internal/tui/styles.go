package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	borderPadding = 4
	barWidth      = 24
)

// Key strings handled directly.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyTab    = "tab"
	keyBack   = "shift+tab"
	keyHelp   = "?"
	keyUp     = "up"
	keyDown   = "down"
	keyVimUp  = "k"
	keyVimDn  = "j"
	keyRight  = "right"
	keyLeft   = "left"
	keyVimRt  = "l"
	keyVimLft = "h"
)

// Palette.
const (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorRed    = lipgloss.Color("196")
	colorGray   = lipgloss.Color("246")
	colorBorder = lipgloss.Color("240")
	colorAccent = lipgloss.Color("35")
)

//nolint:gochecknoglobals // Shared Lip Gloss styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorGray)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	OKStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	CriticalStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorGray)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("0")).Background(colorGreen)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorAccent)
)
