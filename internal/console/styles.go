package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/procentric/catena/internal/version"
)

// Application branding constants
const (
	AppName    = "CATENA SYSTEM CONSOLE"
	WelcomeMsg = "Welcome to Catena"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	DefaultHeight    = 24 // Fallback height before the first WindowSizeMsg
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2F6FED") // Blue
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#2F6FED") // Blue (same as primary)
)

// Common styles
var (
	// Title style for screen headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Header style for the application frame
	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// Subtle style for secondary text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Branch style for interior menu nodes
	BranchStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// Leaf style for actionable menu nodes
	LeafStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Focused line style for the tree cursor
	FocusedLineStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 2)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	// Response message styles
	ResponseStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Status bar style for the navigator footer
	StatusStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Value style for current-setting readouts
	ValueStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Box style for screen containers
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// RenderButton renders a push-button with a focus highlight.
func RenderButton(label string, focused bool) string {
	if focused {
		return FocusedButtonStyle.Render("< " + label + " >")
	}
	return ButtonStyle.Render("< " + label + " >")
}

// RenderScreenBox renders screen content inside a titled box, the console's
// equivalent of a framed dialog.
func RenderScreenBox(title, content string, width int) string {
	boxWidth := width - 4
	if boxWidth < MinTerminalWidth-4 {
		boxWidth = MinTerminalWidth - 4
	}
	heading := TitleStyle.Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, heading, "", content)
	return BoxStyle.Width(boxWidth).Render(body)
}

// RenderFrame wraps screen content with the application header and footer.
// Every top-level view goes through this so the console looks uniform no
// matter which screen is active.
func RenderFrame(content, footerText string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width).
		Padding(0, 1).
		Render(HeaderStyle.Render(AppName) + SubtleStyle.Render("  v"+AppVersion()))

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width).
		Padding(0, 1).
		Render(HelpStyle.Render(footerText))

	body := lipgloss.NewStyle().
		Width(width).
		Height(height - lipgloss.Height(header) - lipgloss.Height(footer)).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
