package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane   PaneConfig
	Modal  ModalConfig
	Input  InputConfig
	Text   TextConfig
	Search SearchConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted from terminal width before splitting.
	// Accounts for app padding (4) and the borders of both panes (4).
	WidthOffset int

	// JokeWidthPercent is the share of the width given to the joke pane.
	JokeWidthPercent int

	// MinJokeWidth is the minimum width of the joke pane.
	MinJokeWidth int

	// MinFavoritesWidth is the minimum width of the favorites pane.
	MinFavoritesWidth int

	// ContentPadding is subtracted from pane width for line rendering.
	ContentPadding int

	// FavoritesHeaderLines accounts for the title lines in the favorites pane.
	FavoritesHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the modal width as percentage of terminal width.
	DefaultWidthPercent int

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
	// Edit field limits. 0 means no limit, so any joke the API
	// serves round-trips through the form unchanged.
	SetupCharLimit     int
	PunchlineCharLimit int
	SearchCharLimit    int

	// SetupHeight and PunchlineHeight are the edit field heights in rows.
	SetupHeight     int
	PunchlineHeight int

	// StandardWidth is the display width of every input.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// SearchConfig holds search view layout configuration.
type SearchConfig struct {
	// HeaderReduction: lines for title, input, help and padding.
	HeaderReduction int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:      7,
			MinHeight:            6,
			WidthOffset:          8,
			JokeWidthPercent:     60,
			MinJokeWidth:         30,
			MinFavoritesWidth:    20,
			ContentPadding:       3,
			FavoritesHeaderLines: 2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             40,
			MaxWidth:             70,
			HelpLeftColumnWidth:  20,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			SetupCharLimit:     0,
			PunchlineCharLimit: 0,
			SearchCharLimit:    100,
			SetupHeight:        4,
			PunchlineHeight:    3,
			StandardWidth:      50,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Search: SearchConfig{
			HeaderReduction: 8,
		},
	}
}
