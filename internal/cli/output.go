package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
)

// Box layout constants.
const (
	defaultBoxWidth  = 64
	minBoxWidth      = 40
	maxBoxWidth      = 100
	boxPaddingWidth  = 4
	progressBarWidth = 30
)

// boxBorderColor returns the Lip Gloss color used for box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the Lip Gloss color used for box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("42") }

func colorOK() lipgloss.Color       { return lipgloss.Color("42") }
func colorWarning() lipgloss.Color  { return lipgloss.Color("214") }
func colorCritical() lipgloss.Color { return lipgloss.Color("196") }
func colorMuted() lipgloss.Color    { return lipgloss.Color("246") }

// isWriterTerminal reports whether w is a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// getTerminalWidth returns the width of w, or defaultBoxWidth.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultBoxWidth
}

// calculateBoxWidth clamps the terminal width to a readable box width.
func calculateBoxWidth(termWidth int) int {
	width := termWidth - boxPaddingWidth
	switch {
	case width < minBoxWidth:
		return minBoxWidth
	case width > maxBoxWidth:
		return maxBoxWidth
	default:
		return width
	}
}

// outputFormat resolves the --output flag, falling back to the configuration.
func outputFormat(flags *globalFlags) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flags.output))
	if f == "" {
		f = config.GetGlobalConfig().Output.DefaultFormat
	}
	switch f {
	case config.FormatTable, config.FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table or json)", f)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render writes v as JSON or through the table renderer.
func render(w io.Writer, flags *globalFlags, v any, table func(w io.Writer, styled bool) error) error {
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}
	if format == config.FormatJSON {
		return writeJSON(w, v)
	}
	return table(w, isWriterTerminal(w))
}

// box wraps content in the rounded border used by every styled view.
func box(w io.Writer, title, content string) error {
	width := calculateBoxWidth(getTerminalWidth(w))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(width)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", width-boxPaddingWidth))
	b.WriteString("\n")
	b.WriteString(content)
	_, err := fmt.Fprintln(w, borderStyle.Render(b.String()))
	return err
}

// healthColor maps goal health to a display color.
func healthColor(h engine.GoalHealth) lipgloss.Color {
	switch h {
	case engine.HealthWarning:
		return colorWarning()
	case engine.HealthCritical, engine.HealthExceeded:
		return colorCritical()
	case engine.HealthOK:
		return colorOK()
	default:
		return colorMuted()
	}
}

// healthLabel is the upper-case label of h.
func healthLabel(h engine.GoalHealth) string {
	if h == "" {
		return strings.ToUpper(string(engine.HealthUnspecified))
	}
	return strings.ToUpper(string(h))
}

// renderProgressBar draws percentage as a bar of width cells, capped at 100.
func renderProgressBar(percentage float64, width int, color lipgloss.Color, styled bool) string {
	capped := min(max(percentage, 0), 100)
	filled := int(capped / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if !styled {
		bar = strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
		return "[" + bar + "]"
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// formatter returns the number formatter for the resolved locale.
func formatter(flags *globalFlags) *greenops.Formatter {
	loc, err := resolveLocale(flags, config.GetGlobalConfig())
	if err != nil {
		loc = greenops.DefaultLocale
	}
	return greenops.NewFormatter(loc)
}
