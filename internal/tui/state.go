package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/jk/internal/model"
	"github.com/nikbrunner/jk/internal/search"
	"github.com/nikbrunner/jk/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit
	ModeSearch
	ModeFavorites
	ModeConfirmRemove
	ModeHelp
)

// MessageType selects how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Edit field indexes.
const (
	fieldSetup = iota
	fieldPunchline
)

// EditState holds the two fields of the edit form. Jokes can span
// several lines, so both fields are textareas.
type EditState struct {
	Setup     textarea.Model
	Punchline textarea.Model
	Focus     int // fieldSetup or fieldPunchline

	// loaded is the buffer the form was seeded from; seeded is what the
	// fields reported right after seeding. A field still showing its
	// seeded text is untouched and yields the loaded text verbatim.
	loaded model.EditBuffer
	seeded model.EditBuffer
}

// NewEditState creates a new EditState with initialized fields.
func NewEditState(cfg layout.LayoutConfig) EditState {
	return EditState{
		Setup:     newEditField("Setup", cfg.Input.SetupCharLimit, cfg.Input.SetupHeight, cfg.Input.StandardWidth),
		Punchline: newEditField("Punchline", cfg.Input.PunchlineCharLimit, cfg.Input.PunchlineHeight, cfg.Input.StandardWidth),
	}
}

func newEditField(placeholder string, charLimit, height, width int) textarea.Model {
	field := textarea.New()
	field.Placeholder = placeholder
	field.ShowLineNumbers = false
	field.CharLimit = charLimit
	field.MaxHeight = 0
	field.MaxWidth = 0
	// Enter saves the form; newlines are typed with alt+enter or ctrl+j.
	field.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	field.SetHeight(height)
	field.SetWidth(width)
	return field
}

// Load seeds both fields from the edit buffer and focuses the setup field.
func (e *EditState) Load(buf model.EditBuffer) {
	e.Setup.SetValue(buf.Setup)
	e.Punchline.SetValue(buf.Punchline)
	e.loaded = buf
	e.seeded = model.EditBuffer{
		Setup:     e.Setup.Value(),
		Punchline: e.Punchline.Value(),
	}
	e.focus(fieldSetup)
}

// SetWidth resizes both fields.
func (e *EditState) SetWidth(width int) {
	e.Setup.SetWidth(width)
	e.Punchline.SetWidth(width)
}

// NextField moves focus to the other field.
func (e *EditState) NextField() {
	if e.Focus == fieldSetup {
		e.focus(fieldPunchline)
	} else {
		e.focus(fieldSetup)
	}
}

// Values returns the current form text. Untouched fields return the
// loaded text exactly.
func (e *EditState) Values() model.EditBuffer {
	setup := e.Setup.Value()
	if setup == e.seeded.Setup {
		setup = e.loaded.Setup
	}
	punchline := e.Punchline.Value()
	if punchline == e.seeded.Punchline {
		punchline = e.loaded.Punchline
	}
	return model.EditBuffer{Setup: setup, Punchline: punchline}
}

// Reset clears both fields.
func (e *EditState) Reset() {
	e.Setup.Reset()
	e.Punchline.Reset()
	e.Setup.Blur()
	e.Punchline.Blur()
	e.Focus = fieldSetup
	e.loaded = model.EditBuffer{}
	e.seeded = model.EditBuffer{}
}

func (e *EditState) focus(field int) {
	e.Focus = field
	if field == fieldSetup {
		e.Setup.Focus()
		e.Punchline.Blur()
	} else {
		e.Punchline.Focus()
		e.Setup.Blur()
	}
}

// SearchState holds state for the fuzzy search over the history.
type SearchState struct {
	Input   textinput.Model
	Results []search.Result
	Cursor  int
}

// NewSearchState creates a new SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search jokes..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth

	return SearchState{
		Input: input,
	}
}

// Reset clears the search state.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Input.Blur()
	s.Results = nil
	s.Cursor = 0
}

// Selected returns the result under the cursor, if any.
func (s *SearchState) Selected() (search.Result, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Results) {
		return search.Result{}, false
	}
	return s.Results[s.Cursor], true
}

// FavoritesNav holds the cursor of the favorites pane.
type FavoritesNav struct {
	Cursor int
}

// Clamp keeps the cursor inside a list of n favorites.
func (f *FavoritesNav) Clamp(n int) {
	if f.Cursor >= n {
		f.Cursor = n - 1
	}
	if f.Cursor < 0 {
		f.Cursor = 0
	}
}
