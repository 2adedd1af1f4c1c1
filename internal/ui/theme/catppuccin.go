package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin theme (Mocha variant) - Soothing pastel theme
// https://catppuccin.com/
var Catppuccin = Theme{
	Name: "catppuccin",

	// Background colors
	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	// Primary colors
	Primary:   lipgloss.Color("#89B4FA"), // Blue
	Secondary: lipgloss.Color("#CBA6F7"), // Mauve
	Info:      lipgloss.Color("#74C7EC"), // Sapphire

	// Semantic colors
	Success: lipgloss.Color("#A6E3A1"), // Green
	Warning: lipgloss.Color("#F9E2AF"), // Yellow
	Error:   lipgloss.Color("#F38BA8"), // Red

	// Priority colors
	PriorityLow:    lipgloss.Color("#A6E3A1"), // Green
	PriorityMedium: lipgloss.Color("#F9E2AF"), // Yellow
	PriorityHigh:   lipgloss.Color("#F38BA8"), // Red

	// Board accents
	BoardBlue:   lipgloss.Color("#89B4FA"),
	BoardPurple: lipgloss.Color("#CBA6F7"),
	BoardGreen:  lipgloss.Color("#A6E3A1"),
	BoardYellow: lipgloss.Color("#F9E2AF"),
	BoardRed:    lipgloss.Color("#F38BA8"),
	BoardPink:   lipgloss.Color("#F5C2E7"),
}
