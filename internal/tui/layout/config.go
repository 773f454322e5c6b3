package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds card grid dimension configuration.
type GridConfig struct {
	// HeightReduction is subtracted from terminal height for the grid.
	// Accounts for: app padding (1) + header (1) + blank (1) + help bar (3) = 6
	HeightReduction int

	// WidthReduction is subtracted from terminal width before dividing
	// into columns. Accounts for app padding left (2) + right (2).
	WidthReduction int

	// Gap is the number of blank columns between two cards.
	Gap int

	// MinCardWidth is the minimum outer width of a card.
	MinCardWidth int

	// CardChrome is subtracted from card width for content rendering.
	// Accounts for border (1) + padding (1) on each side.
	CardChrome int

	// CardHeight is the outer height of a card in lines:
	// border (2) + thumbnail line (1) + title line (1).
	CardHeight int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// LargeWidthPercent is used for the add-bookmark modal.
	LargeWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit   int
	URLCharLimit     int
	SearchCharLimit  int
	FilterCharLimit  int
	ColumnsCharLimit int

	// Display widths
	StandardWidth int // Used for title, URLs, web search
	FilterWidth   int // Used for filter input (narrower)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			HeightReduction: 6, // app padding (1) + header (1) + blank (1) + help bar (3)
			WidthReduction:  4,
			Gap:             1,
			MinCardWidth:    8,
			CardChrome:      4,
			CardHeight:      4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			LargeWidthPercent:    50,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  18,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			TitleCharLimit:   100,
			URLCharLimit:     2000,
			SearchCharLimit:  200,
			FilterCharLimit:  50,
			ColumnsCharLimit: 3,
			StandardWidth:    40,
			FilterWidth:      30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
