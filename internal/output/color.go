// Package output provides styled terminal rendering for commitprobe reports.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorHuman marks evidence of human authorship.
	ColorHuman = lipgloss.Color("#66bb6a")

	// ColorMachine marks evidence of machine assistance.
	ColorMachine = lipgloss.Color("#ef5350")

	// ColorWarning is used for borderline values.
	ColorWarning = lipgloss.Color("#ffb74d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleHuman   lipgloss.Style
	StyleMachine lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel pads metric labels into a column.
	StyleLabel lipgloss.Style
)

// noColor tracks whether color output is disabled.
var noColor bool

func init() {
	applyStyles(true)
}

func applyStyles(color bool) {
	s := lipgloss.NewStyle
	if !color {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleHuman = plain
		StyleMachine = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(26)
		return
	}
	StyleHeader = s().Foreground(ColorPrimary).Bold(true)
	StyleHuman = s().Foreground(ColorHuman)
	StyleMachine = s().Foreground(ColorMachine)
	StyleWarning = s().Foreground(ColorWarning)
	StyleMuted = s().Foreground(ColorMuted)
	StyleBold = s().Bold(true)
	StyleLabel = s().Width(26)
}

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(!disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// AutoColor enables color only when wanted is true and f is a terminal.
func AutoColor(f *os.File, wanted bool) {
	SetNoColor(!wanted || !IsTerminal(f))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
