package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - ANSI 256 colors for broad terminal support
var (
	ColorCyan   = lipgloss.Color("6")
	ColorYellow = lipgloss.Color("3")
	ColorRed    = lipgloss.Color("1")
	ColorGreen  = lipgloss.Color("2")
	ColorBlue   = lipgloss.Color("4")
	ColorGray   = lipgloss.Color("8")
)

var (
	// Timestamps in log output
	TimestampStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// Log stream names
	LogStreamStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// Status messages ("Watching...", "Listing streams...")
	StatusStyle = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	// Error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

	// Warning messages
	WarningStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// Success messages
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// Muted/secondary text
	MutedStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// Labels (field names, table headers)
	LabelStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	// URLs in the view command's listing
	URLStyle = lipgloss.NewStyle().Foreground(ColorBlue).Underline(true)

	// Horizontal rule around the view command's listing
	RuleStyle = lipgloss.NewStyle().Foreground(ColorGreen)
)
