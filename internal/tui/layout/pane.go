package layout

// PaneLayout holds calculated pane widths.
type PaneLayout struct {
	JokeWidth      int
	FavoritesWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the joke pane and
// the favorites pane, honouring each pane's minimum.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	joke := available * cfg.JokeWidthPercent / 100
	if joke < cfg.MinJokeWidth {
		joke = cfg.MinJokeWidth
	}

	favorites := available - joke
	if favorites < cfg.MinFavoritesWidth {
		favorites = cfg.MinFavoritesWidth
	}

	return PaneLayout{
		JokeWidth:      joke,
		FavoritesWidth: favorites,
	}
}

// CalculateItemWidth computes the width available for line content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	width := paneWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
