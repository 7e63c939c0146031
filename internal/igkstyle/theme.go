// Package igkstyle centralizes the terminal styles the CLI uses to
// render the Authorization Hook's approval modal and tabular output.
package igkstyle

import "github.com/charmbracelet/lipgloss"

var (
	ColorWarning = lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"}
	ColorPurple  = lipgloss.AdaptiveColor{Light: "#8E44AD", Dark: "#BD93F9"}
	ColorComment = lipgloss.AdaptiveColor{Light: "#6C7A89", Dark: "#6272A4"}
)

// ModalBox frames the Authorization Hook's approval prompt.
var ModalBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorWarning).
	Padding(1, 2)

// Approved renders a granted decision.
var Approved = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

// Rejected renders a denied or dismissed decision.
var Rejected = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

// ToolLabel highlights the tool/path being requested.
var ToolLabel = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)

// Muted renders secondary hint text below the prompt.
var Muted = lipgloss.NewStyle().Foreground(ColorComment)
