package tui

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/jk/internal/exporter"
	"github.com/nikbrunner/jk/internal/logging"
	"github.com/nikbrunner/jk/internal/model"
	"github.com/nikbrunner/jk/internal/search"
	"github.com/nikbrunner/jk/internal/tui/layout"
)

// App is the main bubbletea model for the joke browser.
type App struct {
	session      *model.Session
	source       model.Source
	logger       *slog.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode      Mode
	edit      EditState
	search    SearchState
	favorites FavoritesNav

	// Fetches in flight; the spinner ticks while this is non-zero.
	pending int
	spinner spinner.Model

	confirmRemove bool

	messageText string
	messageType MessageType

	clipboardWrite func(string) error
	exportPath     func() (string, error)

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session       *model.Session // optional, starts an empty session if nil
	Source        model.Source
	Logger        *slog.Logger         // optional, discards if nil
	Keys          *KeyMap              // optional, uses default if nil
	Styles        *Styles              // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig // optional, uses default if nil
	ConfirmRemove bool

	Clipboard  func(string) error       // optional, uses the system clipboard if nil
	ExportPath func() (string, error) // optional, uses exporter.DefaultExportPath if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	session := params.Session
	if session == nil {
		session = model.NewSession()
	}

	logger := params.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	clipboardWrite := params.Clipboard
	if clipboardWrite == nil {
		clipboardWrite = clipboard.WriteAll
	}

	exportPath := params.ExportPath
	if exportPath == nil {
		exportPath = exporter.DefaultExportPath
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Title

	return App{
		session:        session,
		source:         params.Source,
		logger:         logger.With("session", session.ID()),
		keys:           keys,
		styles:         styles,
		layoutConfig:   layoutCfg,
		mode:           ModeNormal,
		edit:           NewEditState(layoutCfg),
		search:         NewSearchState(layoutCfg),
		spinner:        spin,
		confirmRemove:  params.ConfirmRemove,
		clipboardWrite: clipboardWrite,
		exportPath:     exportPath,
		width:          80,
		height:         24,
	}
}

// WithDimensions returns a copy of the App with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Session returns the session the App operates on.
func (a App) Session() *model.Session {
	return a.session
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the text and type of the message line.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Pending returns the number of fetches in flight.
func (a App) Pending() int {
	return a.pending
}

// ConfirmRemove reports whether removing a joke asks for confirmation.
func (a App) ConfirmRemove() bool {
	return a.confirmRemove
}

// FavoritesCursor returns the selected row of the favorites pane.
func (a App) FavoritesCursor() int {
	return a.favorites.Cursor
}

// SearchResults returns the current search matches.
func (a App) SearchResults() []search.Result {
	return a.search.Results
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.edit.SetWidth(a.editFieldWidth())
		return a, nil

	case spinner.TickMsg:
		if a.pending == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case jokeFetchedMsg:
		return a.handleJokeFetched(msg), nil

	case exportDoneMsg:
		if msg.err != nil {
			a.logger.Error("export failed", "path", msg.path, "error", msg.err)
			a.setMessage(MessageError, fmt.Sprintf("Export failed: %v", msg.err))
			return a, nil
		}
		a.logger.Info("favorites exported", "path", msg.path, "count", msg.count)
		a.setMessage(MessageSuccess, fmt.Sprintf("Exported %d favorites to %s", msg.count, msg.path))
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

		switch a.mode {
		case ModeEdit:
			return a.handleEditMode(msg)
		case ModeSearch:
			return a.handleSearchMode(msg)
		case ModeFavorites:
			return a.handleFavoritesMode(msg)
		case ModeConfirmRemove:
			return a.handleConfirmRemoveMode(msg)
		case ModeHelp:
			return a.handleHelpMode(msg)
		default:
			return a.handleNormalMode(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// handleJokeFetched applies a finished fetch to the session. A failed fetch
// leaves the session untouched.
func (a App) handleJokeFetched(msg jokeFetchedMsg) App {
	if a.pending > 0 {
		a.pending--
	}

	if msg.err != nil {
		a.logger.Error("fetch failed", "error", msg.err, "elapsed", msg.elapsed)
		a.setMessage(MessageError, fmt.Sprintf("Failed to fetch joke: %v", msg.err))
		return a
	}

	// The cursor is about to move, so a form bound to the old current joke
	// can no longer be applied.
	switch a.mode {
	case ModeEdit:
		a.session.DiscardEdit()
		a.edit.Reset()
		a.mode = ModeNormal
		a.setMessage(MessageWarning, "New joke arrived, edit discarded")
	case ModeConfirmRemove:
		a.mode = ModeNormal
		a.setMessage(MessageWarning, "New joke arrived, remove cancelled")
	default:
		a.clearMessage()
	}

	a.session.Append(msg.joke)
	a.logger.Info("joke appended",
		"joke_id", msg.joke.ID,
		"history_len", a.session.Len(),
		"elapsed", msg.elapsed,
	)

	if a.mode == ModeSearch {
		a.refreshSearch()
	}
	return a
}

// handleNormalMode handles keys when browsing jokes.
func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Fetch):
		return a.startFetch()

	case key.Matches(msg, a.keys.Previous):
		a.session.MoveCursor(model.Previous)

	case key.Matches(msg, a.keys.Next):
		a.session.MoveCursor(model.Next)

	case key.Matches(msg, a.keys.First):
		a.session.JumpTo(0)

	case key.Matches(msg, a.keys.Last):
		a.session.JumpTo(a.session.Len() - 1)

	case key.Matches(msg, a.keys.Edit):
		if !a.session.HasCursor() {
			return a, nil
		}
		a.edit.SetWidth(a.editFieldWidth())
		a.edit.Load(a.session.Edit())
		a.mode = ModeEdit
		return a, textarea.Blink

	case key.Matches(msg, a.keys.Remove):
		if !a.session.HasCursor() {
			return a, nil
		}
		if a.confirmRemove {
			a.mode = ModeConfirmRemove
			return a, nil
		}
		a.removeCurrent()

	case key.Matches(msg, a.keys.AddFavorite):
		a.addFavorite()

	case key.Matches(msg, a.keys.FocusFavorites):
		if len(a.session.Favorites()) == 0 {
			a.setMessage(MessageInfo, "No favorites yet")
			return a, nil
		}
		a.favorites.Clamp(len(a.session.Favorites()))
		a.mode = ModeFavorites

	case key.Matches(msg, a.keys.ToggleConfirm):
		a.confirmRemove = !a.confirmRemove
		if a.confirmRemove {
			a.setMessage(MessageInfo, "Remove confirmation on")
		} else {
			a.setMessage(MessageInfo, "Remove confirmation off")
		}

	case key.Matches(msg, a.keys.Search):
		if a.session.Len() == 0 {
			a.setMessage(MessageInfo, "No jokes to search yet")
			return a, nil
		}
		a.search.Reset()
		a.search.Input.Focus()
		a.mode = ModeSearch
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Yank):
		a.yankCurrent()

	case key.Matches(msg, a.keys.Export):
		return a.startExport()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// editFieldWidth is the edit field width that fits inside the modal padding.
func (a App) editFieldWidth() int {
	if a.width == 0 {
		return a.layoutConfig.Input.StandardWidth
	}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	return max(1, min(a.layoutConfig.Input.StandardWidth, modalWidth-8))
}

// handleEditMode handles keys while the edit form is open.
func (a App) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.session.DiscardEdit()
		a.edit.Reset()
		a.mode = ModeNormal
		a.setMessage(MessageInfo, "Edit discarded")
		return a, nil

	case tea.KeyEnter:
		if msg.Alt {
			// alt+enter inserts a newline in the focused field
			break
		}
		values := a.edit.Values()
		if a.session.SaveEdit(values.Setup, values.Punchline) {
			current, _ := a.session.Current()
			a.logger.Info("joke edited", "joke_id", current.ID)
			a.setMessage(MessageSuccess, "Joke saved")
		}
		a.edit.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab, tea.KeyShiftTab:
		a.edit.NextField()
		return a, nil
	}

	var cmd tea.Cmd
	if a.edit.Focus == fieldSetup {
		a.edit.Setup, cmd = a.edit.Setup.Update(msg)
	} else {
		a.edit.Punchline, cmd = a.edit.Punchline.Update(msg)
	}

	values := a.edit.Values()
	a.session.SetEdit(values.Setup, values.Punchline)
	return a, cmd
}

// handleSearchMode handles keys in the fuzzy search view.
func (a App) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.search.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		if result, ok := a.search.Selected(); ok {
			a.session.JumpTo(result.Index)
		}
		a.search.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyCtrlK:
		if a.search.Cursor > 0 {
			a.search.Cursor--
		}
		return a, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyCtrlJ:
		if a.search.Cursor < len(a.search.Results)-1 {
			a.search.Cursor++
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.refreshSearch()
	a.search.Cursor = 0
	return a, cmd
}

// handleFavoritesMode handles keys while the favorites pane has focus.
func (a App) handleFavoritesMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favorites := a.session.Favorites()

	switch {
	case key.Matches(msg, a.keys.FocusFavorites), msg.Type == tea.KeyEsc:
		a.mode = ModeNormal

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.favorites.Cursor < len(favorites)-1 {
			a.favorites.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.favorites.Cursor > 0 {
			a.favorites.Cursor--
		}

	case key.Matches(msg, a.keys.RemoveFavorite):
		if a.favorites.Cursor >= len(favorites) {
			return a, nil
		}
		joke := favorites[a.favorites.Cursor]
		a.session.RemoveFavorite(joke.ID)
		a.logger.Info("favorite removed", "joke_id", joke.ID)
		a.setMessage(MessageSuccess, "Removed from favorites")

		remaining := len(a.session.Favorites())
		a.favorites.Clamp(remaining)
		if remaining == 0 {
			a.mode = ModeNormal
		}

	case msg.Type == tea.KeyEnter:
		if a.favorites.Cursor >= len(favorites) {
			return a, nil
		}
		index := a.session.IndexOf(favorites[a.favorites.Cursor].ID)
		if index < 0 {
			a.setMessage(MessageWarning, "Joke is no longer in the history")
			return a, nil
		}
		a.session.JumpTo(index)
		a.mode = ModeNormal

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// handleConfirmRemoveMode handles the remove confirmation modal.
func (a App) handleConfirmRemoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter, msg.String() == "y":
		a.mode = ModeNormal
		a.removeCurrent()
	case msg.Type == tea.KeyEsc, msg.String() == "n", msg.String() == "q":
		a.mode = ModeNormal
	}
	return a, nil
}

// handleHelpMode closes the help overlay.
func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || key.Matches(msg, a.keys.Help, a.keys.Quit) {
		a.mode = ModeNormal
	}
	return a, nil
}

// startFetch kicks off an asynchronous fetch. Several fetches may be in
// flight; each appends independently when it completes.
func (a App) startFetch() (tea.Model, tea.Cmd) {
	if a.source == nil {
		a.setMessage(MessageError, "No joke source configured")
		return a, nil
	}

	a.pending++
	a.logger.Debug("fetch started", "pending", a.pending)

	if a.pending == 1 {
		return a, tea.Batch(a.spinner.Tick, fetchJokeCmd(a.source))
	}
	return a, fetchJokeCmd(a.source)
}

// startExport renders the favorites now and writes them off the Update loop.
func (a App) startExport() (tea.Model, tea.Cmd) {
	path, err := a.exportPath()
	if err != nil {
		a.setMessage(MessageError, fmt.Sprintf("Export failed: %v", err))
		return a, nil
	}
	doc := exporter.ExportHTML(a.session)
	return a, exportCmd(path, doc, len(a.session.Favorites()))
}

func (a *App) removeCurrent() {
	joke, ok := a.session.RemoveCurrent()
	if !ok {
		return
	}
	a.logger.Info("joke removed", "joke_id", joke.ID, "history_len", a.session.Len())
	a.favorites.Clamp(len(a.session.Favorites()))
	a.setMessage(MessageSuccess, "Joke removed")
}

func (a *App) addFavorite() {
	joke, ok := a.session.Current()
	if !ok {
		return
	}
	if !a.session.AddFavorite() {
		a.setMessage(MessageInfo, "Already in favorites")
		return
	}
	a.logger.Info("favorite added", "joke_id", joke.ID)
	a.setMessage(MessageSuccess, "Added to favorites")
}

func (a *App) yankCurrent() {
	joke, ok := a.session.Current()
	if !ok {
		return
	}
	if err := a.clipboardWrite(joke.String()); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		a.setMessage(MessageError, fmt.Sprintf("Copy failed: %v", err))
		return
	}
	a.setMessage(MessageSuccess, "Copied joke to clipboard")
}

func (a *App) refreshSearch() {
	a.search.Results = search.FuzzySearchJokes(a.session.History(), a.search.Input.Value())
	if a.search.Cursor >= len(a.search.Results) {
		a.search.Cursor = max(0, len(a.search.Results)-1)
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}
