package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Thumb        lipgloss.Style // [img] marker for cards with a thumbnail
	Placeholder  lipgloss.Style // two-letter stand-in for missing thumbnails
	CardTitle    lipgloss.Style
	Modal        lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	URL          lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Warning      lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "h/l")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	HintLabel    lipgloss.Style // Row label in the help bar
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	warning := lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Header: lipgloss.NewStyle().
			Foreground(subtle),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Thumb: lipgloss.NewStyle().
			Foreground(accent),

		Placeholder: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		CardTitle: lipgloss.NewStyle().
			Foreground(primary),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Label: lipgloss.NewStyle().
			Foreground(primary),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Warning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(subtle).
			Bold(true),
	}
}
