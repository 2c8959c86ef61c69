// Package ui provides terminal styling and output helpers for the owl CLI.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal returns true if stdout is connected to a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInteractive returns true if both stdin and stdout are terminals, so a
// prompt can be shown and answered.
func IsInteractive() bool {
	return IsTerminal() && term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldUseColor determines if ANSI color codes should be used.
// Respects standard conventions:
//   - NO_COLOR: https://no-color.org/ - disables color if set
//   - CLICOLOR=0: disables color
//   - CLICOLOR_FORCE: forces color even in non-TTY
//   - Falls back to TTY detection
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") != "" {
		return true
	}
	return IsTerminal()
}

// ShouldUseEmoji determines if emoji decorations should be used.
// Disabled in non-TTY mode and by OWL_NO_EMOJI.
func ShouldUseEmoji() bool {
	if os.Getenv("OWL_NO_EMOJI") != "" {
		return false
	}
	return IsTerminal()
}

// ColorProfile returns the termenv profile matching ShouldUseColor.
func ColorProfile() termenv.Profile {
	if !ShouldUseColor() {
		return termenv.Ascii
	}
	if p := termenv.EnvColorProfile(); p != termenv.Ascii {
		return p
	}
	// CLICOLOR_FORCE on a non-TTY
	return termenv.ANSI256
}

// ApplyColorProfile makes lipgloss render with ColorProfile. Call once at
// startup, after flags are parsed.
func ApplyColorProfile() {
	lipgloss.SetColorProfile(ColorProfile())
}

// GetWidth returns the width of the terminal or a default value.
func GetWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Emoji returns icon when emoji are enabled, otherwise fallback.
func Emoji(icon, fallback string) string {
	if ShouldUseEmoji() {
		return icon
	}
	return fallback
}
