package tui

import (
	"os"

	"golang.org/x/term"
)

// ViewState is the interaction state of a model.
type ViewState int

const (
	// ViewStateBrowse is the normal tabbed view.
	ViewStateBrowse ViewState = iota
	// ViewStateHelp shows the full key help below the active tab.
	ViewStateHelp
	// ViewStateQuitting is set once the user asked to leave.
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateBrowse:
		return "browse"
	case ViewStateHelp:
		return "help"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// IsTTY reports whether both stdin and stdout are terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
