package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/jk/internal/model"
	"github.com/nikbrunner/jk/internal/search"
	"github.com/nikbrunner/jk/internal/tui/layout"
)

// renderView creates the complete view for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeSearch:
		return a.renderSearch()
	case ModeEdit, ModeConfirmRemove:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	widths := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderJokePane(widths.JokeWidth, paneHeight),
		a.renderFavoritesPane(widths.FavoritesWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders "Current Joke (i/n)" plus the loading indicator.
func (a App) renderHeader() string {
	header := a.styles.Title.Render("Current Joke") + " " +
		a.styles.Counter.Render("("+a.session.Position()+")")

	if a.pending > 0 {
		loading := "fetching..."
		if a.pending > 1 {
			loading = fmt.Sprintf("fetching %d...", a.pending)
		}
		header += "  " + a.spinner.View() + " " + a.styles.Empty.Render(loading)
	}
	return header
}

// renderJokePane renders the joke under the cursor.
func (a App) renderJokePane(width, height int) string {
	style := a.styles.Pane
	if a.mode == ModeNormal {
		style = a.styles.PaneActive
	}
	style = style.Width(width).Height(height)

	joke, ok := a.session.Current()
	if !ok {
		return style.Render(a.styles.Empty.Render("Press f to get a joke"))
	}

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	wrap := lipgloss.NewStyle().Width(itemWidth)

	var content strings.Builder
	meta := fmt.Sprintf("#%d", joke.ID)
	if joke.Type != "" {
		meta = joke.Type + " " + meta
	}
	content.WriteString(a.styles.JokeType.Render(meta) + "\n\n")
	content.WriteString(wrap.Render(a.styles.Setup.Render(joke.Setup)) + "\n\n")
	content.WriteString(wrap.Render(a.styles.Punchline.Render(joke.Punchline)))

	if a.session.IsFavorite(joke.ID) {
		content.WriteString("\n\n" + a.styles.Title.Render("★ favorite"))
	}

	return style.Render(content.String())
}

// renderFavoritesPane renders the favorites list.
func (a App) renderFavoritesPane(width, height int) string {
	style := a.styles.Pane
	if a.mode == ModeFavorites {
		style = a.styles.PaneActive
	}
	style = style.Width(width).Height(height)

	favorites := a.session.Favorites()

	var content strings.Builder
	content.WriteString(a.styles.Title.Render(fmt.Sprintf("Favorites (%d)", len(favorites))) + "\n\n")

	if len(favorites) == 0 {
		content.WriteString(a.styles.Empty.Render("No favorites yet."))
		return style.Render(content.String())
	}

	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.FavoritesHeaderLines)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	offset := layout.CalculateViewportOffset(a.favorites.Cursor, len(favorites), visibleHeight)

	for i, joke := range favorites {
		if i < offset {
			continue
		}
		if i >= offset+visibleHeight {
			break
		}
		selected := a.mode == ModeFavorites && i == a.favorites.Cursor
		content.WriteString(a.renderFavoriteItem(joke, selected, itemWidth) + "\n")
	}

	return style.Render(strings.TrimRight(content.String(), "\n"))
}

// renderFavoriteItem renders one favorite as a single truncated line.
func (a App) renderFavoriteItem(joke model.Joke, selected bool, maxWidth int) string {
	// Item styles add one column of left padding.
	line, _ := layout.TruncateWithPrefix(
		layout.SingleLine(joke.Setup), maxWidth-1, fmt.Sprintf("#%d ", joke.ID), a.layoutConfig.Text,
	)
	if selected {
		return a.styles.ItemSelected.Render(line)
	}
	return a.styles.Item.Render(line)
}

// renderModal renders the edit form or the remove confirmation.
func (a App) renderModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	switch a.mode {
	case ModeEdit:
		title.WriteString("Edit Joke (" + a.session.Position() + ")\n\n")
		content.WriteString("Setup:\n")
		content.WriteString(a.edit.Setup.View())
		content.WriteString("\n\n")
		content.WriteString("Punchline:\n")
		content.WriteString(a.edit.Punchline.View())
		content.WriteString("\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Tab", Desc: "switch"},
			{Key: "Alt+Enter", Desc: "newline"},
			{Key: "Enter", Desc: "save"},
			{Key: "Esc", Desc: "discard"},
		}))

	case ModeConfirmRemove:
		title.WriteString("Remove joke?\n\n")
		if joke, ok := a.session.Current(); ok {
			setup, _ := layout.TruncateText(layout.SingleLine(joke.Setup), modalWidth-4, a.layoutConfig.Text)
			content.WriteString(setup + "\n\n")
			if a.session.IsFavorite(joke.ID) {
				content.WriteString(a.styles.Help.Render("It is also removed from favorites.") + "\n\n")
			}
		}
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	modal := modalStyle.Render(a.styles.Title.Render(title.String()) + content.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderSearch renders the full-screen fuzzy search over the history.
func (a App) renderSearch() string {
	contentStyle := lipgloss.NewStyle().Padding(1, 2)

	listHeight := layout.CalculateSearchListHeight(a.height, a.layoutConfig.Search)
	itemWidth := a.width - 6 // content padding plus the selection marker

	var results strings.Builder
	switch {
	case a.search.Input.Value() == "":
		results.WriteString(a.styles.Empty.Render(fmt.Sprintf("Type to search %d jokes", a.session.Len())))
	case len(a.search.Results) == 0:
		results.WriteString(a.styles.Empty.Render("No matches"))
	default:
		start, end := layout.CalculateVisibleListItems(listHeight, a.search.Cursor, len(a.search.Results))
		for i := start; i < end; i++ {
			line := a.renderSearchResult(a.search.Results[i], itemWidth)
			if i == a.search.Cursor {
				results.WriteString(a.styles.Title.Render("▸ ") + line + "\n")
			} else {
				results.WriteString("  " + line + "\n")
			}
		}
	}

	countStr := fmt.Sprintf("%d results", len(a.search.Results))
	if len(a.search.Results) == 1 {
		countStr = "1 result"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Search")+"  "+a.styles.Empty.Render(countStr),
		"",
		a.search.Input.View(),
		"",
		strings.TrimRight(results.String(), "\n"),
	)

	// Top-left aligned, leave room for help bar at bottom
	main := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Left,
		lipgloss.Top,
		contentStyle.Render(content),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderSearchResult renders a match with its matched characters highlighted.
func (a App) renderSearchResult(r search.Result, maxWidth int) string {
	text := search.Text(r.Joke)

	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, idx := range r.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d. ", r.Index+1)
	for i, ch := range text {
		switch {
		case ch == '\n':
			b.WriteRune(' ')
		case matched[i]:
			b.WriteString(a.styles.Match.Render(string(ch)))
		default:
			b.WriteRune(ch)
		}
	}

	return layout.TruncateANSIAware(b.String(), maxWidth, a.layoutConfig.Text)
}

// renderHelpBar renders the message line and keyboard hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	localHints := a.renderHints(a.getContextualHints())
	if localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global keyboard hints and toggle state (normal mode only)
	if a.mode == ModeNormal {
		global := a.renderHintSlice(a.getGlobalHints())
		if a.confirmRemove {
			global += " [cfm:on]"
		} else {
			global += " [cfm:off]"
		}
		lines = append(lines, a.styles.HintLabel.Render("Global ")+global)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the full-screen key reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/l  prev/next\n")
	left.WriteString("g    first\n")
	left.WriteString("G    last\n")
	left.WriteString("/    search\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("favorites") + "\n")
	left.WriteString("tab  focus pane\n")
	left.WriteString("j/k  move\n")
	left.WriteString("x    remove\n")
	left.WriteString("E    export html\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("joke") + "\n")
	right.WriteString("f    get random joke\n")
	right.WriteString("e    edit\n")
	right.WriteString("a    add to favorites\n")
	right.WriteString("d    remove\n")
	right.WriteString("y    yank\n")
	right.WriteString("c    confirm toggle\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [ctrl+c] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
