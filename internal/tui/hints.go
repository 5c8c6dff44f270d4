package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "Enter")
	Desc string // Short description (e.g., "prev/next", "save")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "f:fetch h/l:prev/next"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (h/l, g/G, etc.)
	Edit   []Hint // Edit hints (e, d, a)
	Action []Hint // Action hints (f, Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeEdit:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next field"}},
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "discard"}},
		}
	case ModeSearch:
		return HintSet{
			Nav:    []Hint{{Key: "↑/↓", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "jump"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeFavorites:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "show"}},
			Edit:   []Hint{{Key: "x", Desc: "remove"}},
			System: []Hint{{Key: "Tab/Esc", Desc: "back"}},
		}
	case ModeConfirmRemove:
		// Hints are shown inside the modal itself.
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal. Hints for operations
// that need a current joke are left out while the history is empty.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Action: []Hint{
			{Key: "f", Desc: "fetch"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if !a.session.HasCursor() {
		return hints
	}

	hints.Nav = []Hint{
		{Key: "h/l", Desc: "prev/next"},
	}
	hints.Action = append(hints.Action,
		Hint{Key: "/", Desc: "search"},
		Hint{Key: "Tab", Desc: "favorites"},
	)
	hints.Edit = []Hint{
		{Key: "e", Desc: "edit"},
		{Key: "a", Desc: "fav"},
		{Key: "d", Desc: "remove"},
	}
	return hints
}

// getGlobalHints returns the hints shown on the second row in normal mode.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "y", Desc: "yank"},
		{Key: "E", Desc: "export"},
		{Key: "c", Desc: "confirm"},
	}
}
