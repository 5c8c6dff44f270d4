package tui_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/jk/internal/model"
	"github.com/nikbrunner/jk/internal/tui"
)

var (
	jokeKnock = model.Joke{ID: 1, Type: "knock-knock", Setup: "Knock knock. Who's there? Lettuce.", Punchline: "Lettuce in, it's cold out here."}
	jokeBar   = model.Joke{ID: 2, Type: "programming", Setup: "A SQL query walks into a bar.", Punchline: "It asks two tables: can I join you?"}
	jokeAtoms = model.Joke{ID: 3, Type: "general", Setup: "Why don't scientists trust atoms?", Punchline: "They make up everything."}
)

// fakeSource hands out jokes in call order, then fails.
type fakeSource struct {
	jokes []model.Joke
	err   error
	calls int
}

func (f *fakeSource) RandomJoke(ctx context.Context) (model.Joke, error) {
	f.calls++
	if f.err != nil {
		return model.Joke{}, f.err
	}
	if len(f.jokes) == 0 {
		return model.Joke{}, errors.New("no more jokes")
	}
	j := f.jokes[0]
	f.jokes = f.jokes[1:]
	return j, nil
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key to the app and drops the returned commands.
func press(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		updated, _ := app.Update(keyMsg(k))
		app = updated.(tui.App)
	}
	return app
}

// typeText sends text one rune at a time, the way a terminal delivers it.
func typeText(app tui.App, text string) tui.App {
	for _, r := range text {
		if r == ' ' {
			app = press(app, "space")
			continue
		}
		app = press(app, string(r))
	}
	return app
}

// pressCmd sends a key and returns the resulting command.
func pressCmd(app tui.App, k string) (tui.App, tea.Cmd) {
	updated, cmd := app.Update(keyMsg(k))
	return updated.(tui.App), cmd
}

// runCmd executes cmd and feeds its messages back into the app. Spinner
// ticks are skipped so the test never waits on a timer.
func runCmd(app tui.App, cmd tea.Cmd) tui.App {
	if cmd == nil {
		return app
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			app = runCmd(app, c)
		}
	case spinner.TickMsg, nil:
	default:
		updated, _ := app.Update(msg)
		app = updated.(tui.App)
	}
	return app
}

func sessionWith(jokes ...model.Joke) *model.Session {
	s := model.NewSession()
	for _, j := range jokes {
		s.Append(j)
	}
	return s
}

func newTestApp(s *model.Session, src model.Source) tui.App {
	return tui.NewApp(tui.AppParams{Session: s, Source: src})
}

func TestApp_Fetch_AppendsJoke(t *testing.T) {
	src := &fakeSource{jokes: []model.Joke{jokeKnock}}
	app := newTestApp(nil, src)

	app, cmd := pressCmd(app, "f")
	if app.Pending() != 1 {
		t.Errorf("expected 1 pending fetch, got %d", app.Pending())
	}
	// Nothing changes until the fetch completes
	if app.Session().Len() != 0 {
		t.Fatalf("session mutated before fetch completed")
	}

	app = runCmd(app, cmd)

	s := app.Session()
	if s.Len() != 1 || s.Cursor() != 0 {
		t.Fatalf("expected one joke at cursor 0, got len=%d cursor=%d", s.Len(), s.Cursor())
	}
	if current, _ := s.Current(); current != jokeKnock {
		t.Errorf("unexpected current joke %+v", current)
	}
	if app.Pending() != 0 {
		t.Errorf("expected no pending fetch, got %d", app.Pending())
	}
}

func TestApp_Fetch_SpaceKey(t *testing.T) {
	src := &fakeSource{jokes: []model.Joke{jokeKnock}}
	app := newTestApp(nil, src)

	app, cmd := pressCmd(app, "space")
	app = runCmd(app, cmd)

	if app.Session().Len() != 1 {
		t.Errorf("space should fetch a joke, got len=%d", app.Session().Len())
	}
}

func TestApp_Fetch_FailureLeavesSessionUntouched(t *testing.T) {
	s := sessionWith(jokeKnock)
	src := &fakeSource{err: errors.New("status 503")}
	app := newTestApp(s, src)

	app, cmd := pressCmd(app, "f")
	app = runCmd(app, cmd)

	if s.Len() != 1 || s.Cursor() != 0 {
		t.Errorf("failed fetch changed session: len=%d cursor=%d", s.Len(), s.Cursor())
	}
	text, kind := app.Message()
	if kind != tui.MessageError {
		t.Errorf("expected error message, got type %d", kind)
	}
	if !strings.Contains(text, "status 503") {
		t.Errorf("expected cause in message, got %q", text)
	}
	if app.Pending() != 0 {
		t.Errorf("expected no pending fetch, got %d", app.Pending())
	}
}

func TestApp_Fetch_OverlappingRequestsEachAppend(t *testing.T) {
	src := &fakeSource{jokes: []model.Joke{jokeKnock, jokeBar}}
	app := newTestApp(nil, src)

	app, first := pressCmd(app, "f")
	app, second := pressCmd(app, "f")
	if app.Pending() != 2 {
		t.Fatalf("expected 2 pending fetches, got %d", app.Pending())
	}

	app = runCmd(app, second)
	app = runCmd(app, first)

	s := app.Session()
	if s.Len() != 2 {
		t.Fatalf("expected 2 jokes, got %d", s.Len())
	}
	if s.Cursor() != 1 {
		t.Errorf("cursor should follow the last append, got %d", s.Cursor())
	}
	if app.Pending() != 0 {
		t.Errorf("expected no pending fetch, got %d", app.Pending())
	}
}

func TestApp_Fetch_NoSource(t *testing.T) {
	app := newTestApp(nil, nil)

	app, cmd := pressCmd(app, "f")
	if cmd != nil {
		t.Error("expected no command without a source")
	}
	if _, kind := app.Message(); kind != tui.MessageError {
		t.Errorf("expected error message, got type %d", kind)
	}
}

func TestApp_Navigation_HL(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar, jokeAtoms)
	app := newTestApp(s, nil)

	app = press(app, "h")
	if s.Cursor() != 1 {
		t.Errorf("after h, expected cursor 1, got %d", s.Cursor())
	}

	app = press(app, "h", "h", "h")
	if s.Cursor() != 0 {
		t.Errorf("h at first joke should stay at 0, got %d", s.Cursor())
	}

	app = press(app, "l", "right")
	if s.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", s.Cursor())
	}

	press(app, "l")
	if s.Cursor() != 2 {
		t.Errorf("l at last joke should stay at 2, got %d", s.Cursor())
	}
}

func TestApp_Navigation_FirstLast(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar, jokeAtoms)
	app := newTestApp(s, nil)

	app = press(app, "g")
	if s.Cursor() != 0 {
		t.Errorf("after g, expected cursor 0, got %d", s.Cursor())
	}

	press(app, "G")
	if s.Cursor() != 2 {
		t.Errorf("after G, expected cursor 2, got %d", s.Cursor())
	}
}

func TestApp_Navigation_EmptySession(t *testing.T) {
	s := model.NewSession()
	app := newTestApp(s, nil)

	app = press(app, "h", "l", "g", "G", "e", "d", "a", "y")

	if s.Cursor() != model.NoCursor {
		t.Errorf("expected no cursor, got %d", s.Cursor())
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_Edit_SaveUpdatesHistoryAndFavorite(t *testing.T) {
	s := sessionWith(jokeKnock)
	s.AddFavorite()
	app := newTestApp(s, nil)

	app = press(app, "e")
	if app.Mode() != tui.ModeEdit {
		t.Fatalf("expected edit mode, got %d", app.Mode())
	}

	app = typeText(app, "!")
	app = press(app, "tab")
	app = typeText(app, " Brr")

	// Typing only stages text in the edit buffer
	if s.Edit().Setup != jokeKnock.Setup+"!" {
		t.Errorf("expected staged setup, got %q", s.Edit().Setup)
	}
	if current, _ := s.Current(); current != jokeKnock {
		t.Errorf("history changed before save: %+v", current)
	}

	app = press(app, "enter")

	want := jokeKnock
	want.Setup += "!"
	want.Punchline += " Brr"

	if current, _ := s.Current(); current != want {
		t.Errorf("expected saved joke %+v, got %+v", want, current)
	}
	if favs := s.Favorites(); len(favs) != 1 || favs[0] != want {
		t.Errorf("favorite not updated: %+v", favs)
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode after save, got %d", app.Mode())
	}
}

func TestApp_Edit_SaveWithoutTypingKeepsJokeIntact(t *testing.T) {
	long := model.Joke{
		ID:        7,
		Type:      "general",
		Setup:     strings.Repeat("This setup goes on and on. ", 15),
		Punchline: "And then it ends.",
	}
	multiline := model.Joke{
		ID:        8,
		Type:      "knock-knock",
		Setup:     "Knock knock.\nWho's there?\nLettuce.",
		Punchline: "Lettuce who?\nLettuce in, it's cold out here.",
	}
	if len(long.Setup) <= 300 {
		t.Fatalf("fixture too short: %d", len(long.Setup))
	}

	for _, joke := range []model.Joke{long, multiline} {
		s := sessionWith(joke)
		s.AddFavorite()
		app := newTestApp(s, nil)

		app = press(app, "e")
		if got := s.Edit(); got.Setup != joke.Setup || got.Punchline != joke.Punchline {
			t.Errorf("joke %d: edit buffer differs from history: %+v", joke.ID, got)
		}

		app = press(app, "tab", "enter")

		if current, _ := s.Current(); current != joke {
			t.Errorf("joke %d: history changed by an untouched save: %+v", joke.ID, current)
		}
		if favs := s.Favorites(); len(favs) != 1 || favs[0] != joke {
			t.Errorf("joke %d: favorite changed by an untouched save: %+v", joke.ID, favs)
		}
		if app.Mode() != tui.ModeNormal {
			t.Errorf("joke %d: expected normal mode, got %d", joke.ID, app.Mode())
		}
	}
}

func TestApp_Edit_LongJokeAcceptsTypingAtEnd(t *testing.T) {
	setup := strings.Repeat("x", 400)
	s := sessionWith(model.Joke{ID: 9, Setup: setup, Punchline: "p"})
	app := newTestApp(s, nil)

	app = press(app, "e")
	app = typeText(app, "!")
	press(app, "enter")

	if current, _ := s.Current(); current.Setup != setup+"!" {
		t.Errorf("expected %d chars ending in !, got %d", len(setup)+1, len(current.Setup))
	}
}

func TestApp_Edit_AltEnterInsertsNewline(t *testing.T) {
	s := sessionWith(jokeKnock)
	app := newTestApp(s, nil)

	app = press(app, "e", "alt+enter")
	app = typeText(app, "Brr")

	if app.Mode() != tui.ModeEdit {
		t.Fatalf("alt+enter closed the form, mode %d", app.Mode())
	}
	if want := jokeKnock.Setup + "\nBrr"; s.Edit().Setup != want {
		t.Errorf("expected %q, got %q", want, s.Edit().Setup)
	}

	press(app, "enter")

	if current, _ := s.Current(); current.Setup != jokeKnock.Setup+"\nBrr" {
		t.Errorf("multi-line setup not saved: %q", current.Setup)
	}
}

func TestApp_Edit_EscDiscards(t *testing.T) {
	s := sessionWith(jokeKnock)
	app := newTestApp(s, nil)

	app = press(app, "e")
	app = typeText(app, "xyz")
	app = press(app, "esc")

	if current, _ := s.Current(); current != jokeKnock {
		t.Errorf("discarded edit changed the joke: %+v", current)
	}
	if s.Edit().Setup != jokeKnock.Setup {
		t.Errorf("edit buffer not restored, got %q", s.Edit().Setup)
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_Edit_FetchLandingDiscardsForm(t *testing.T) {
	s := sessionWith(jokeKnock)
	src := &fakeSource{jokes: []model.Joke{jokeBar}}
	app := newTestApp(s, src)

	app, cmd := pressCmd(app, "f")
	app = press(app, "e")
	app = typeText(app, "!")

	app = runCmd(app, cmd)

	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected edit form to close, got mode %d", app.Mode())
	}
	if _, kind := app.Message(); kind != tui.MessageWarning {
		t.Errorf("expected warning, got type %d", kind)
	}
	if got := s.History()[0]; got != jokeKnock {
		t.Errorf("first joke changed: %+v", got)
	}
	if s.Cursor() != 1 {
		t.Errorf("expected cursor on new joke, got %d", s.Cursor())
	}
}

func TestApp_Remove_WithoutConfirm(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar)
	app := newTestApp(s, nil)

	press(app, "d")

	if s.Len() != 1 || s.Cursor() != 0 {
		t.Errorf("expected one joke at cursor 0, got len=%d cursor=%d", s.Len(), s.Cursor())
	}
}

func TestApp_Remove_WithConfirm(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar)
	app := tui.NewApp(tui.AppParams{Session: s, ConfirmRemove: true})

	app = press(app, "d")
	if app.Mode() != tui.ModeConfirmRemove {
		t.Fatalf("expected confirm mode, got %d", app.Mode())
	}

	// Esc cancels
	app = press(app, "esc")
	if s.Len() != 2 {
		t.Errorf("cancel should keep jokes, got %d", s.Len())
	}

	app = press(app, "d", "enter")
	if s.Len() != 1 {
		t.Errorf("confirm should remove joke, got %d", s.Len())
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_ToggleConfirm(t *testing.T) {
	s := sessionWith(jokeKnock)
	app := newTestApp(s, nil)

	app = press(app, "c")
	if !app.ConfirmRemove() {
		t.Fatal("expected confirm on after c")
	}

	app = press(app, "d")
	if app.Mode() != tui.ModeConfirmRemove {
		t.Errorf("expected confirm mode, got %d", app.Mode())
	}
}

func TestApp_AddFavorite(t *testing.T) {
	s := sessionWith(jokeKnock)
	app := newTestApp(s, nil)

	app = press(app, "a")
	if _, kind := app.Message(); kind != tui.MessageSuccess {
		t.Errorf("expected success message, got type %d", kind)
	}

	app = press(app, "a")
	text, _ := app.Message()
	if text != "Already in favorites" {
		t.Errorf("expected duplicate notice, got %q", text)
	}
	if len(s.Favorites()) != 1 {
		t.Errorf("expected 1 favorite, got %d", len(s.Favorites()))
	}
}

func TestApp_FavoritesPane(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar, jokeAtoms)
	s.JumpTo(0)
	s.AddFavorite()
	s.JumpTo(2)
	s.AddFavorite()
	app := newTestApp(s, nil)

	app = press(app, "tab")
	if app.Mode() != tui.ModeFavorites {
		t.Fatalf("expected favorites mode, got %d", app.Mode())
	}

	app = press(app, "j")
	if app.FavoritesCursor() != 1 {
		t.Errorf("expected favorites cursor 1, got %d", app.FavoritesCursor())
	}

	// Enter shows the favorite in the joke pane
	app = press(app, "k", "enter")
	if s.Cursor() != 0 {
		t.Errorf("expected cursor on first joke, got %d", s.Cursor())
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}

	app = press(app, "tab", "x")
	if favs := s.Favorites(); len(favs) != 1 || favs[0].ID != jokeAtoms.ID {
		t.Errorf("expected only atoms joke left, got %+v", favs)
	}
	if s.Len() != 3 {
		t.Errorf("removing a favorite must not touch history, got %d", s.Len())
	}

	// Removing the last favorite returns to normal mode
	app = press(app, "d")
	if len(s.Favorites()) != 0 {
		t.Errorf("expected no favorites, got %d", len(s.Favorites()))
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_FavoritesPane_Empty(t *testing.T) {
	app := newTestApp(sessionWith(jokeKnock), nil)

	app = press(app, "tab")
	if app.Mode() != tui.ModeNormal {
		t.Errorf("tab without favorites should stay in normal mode, got %d", app.Mode())
	}
}

func TestApp_Search_JumpsToMatch(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar, jokeAtoms)
	app := newTestApp(s, nil)

	app = press(app, "/")
	if app.Mode() != tui.ModeSearch {
		t.Fatalf("expected search mode, got %d", app.Mode())
	}

	app = typeText(app, "lettuce")
	results := app.SearchResults()
	if len(results) == 0 || results[0].Index != 0 {
		t.Fatalf("expected knock knock joke first, got %+v", results)
	}

	app = press(app, "enter")
	if s.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", s.Cursor())
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_Search_EscKeepsCursor(t *testing.T) {
	s := sessionWith(jokeKnock, jokeBar)
	app := newTestApp(s, nil)

	app = press(app, "/")
	app = typeText(app, "lettuce")
	app = press(app, "esc")

	if s.Cursor() != 1 {
		t.Errorf("esc should not move the cursor, got %d", s.Cursor())
	}
	if len(app.SearchResults()) != 0 {
		t.Errorf("expected search state cleared")
	}
}

func TestApp_Yank(t *testing.T) {
	var copied string
	s := sessionWith(jokeAtoms)
	app := tui.NewApp(tui.AppParams{
		Session: s,
		Clipboard: func(text string) error {
			copied = text
			return nil
		},
	})

	app = press(app, "y")

	if copied != jokeAtoms.String() {
		t.Errorf("expected %q on clipboard, got %q", jokeAtoms.String(), copied)
	}
	if _, kind := app.Message(); kind != tui.MessageSuccess {
		t.Errorf("expected success message, got type %d", kind)
	}
}

func TestApp_Yank_Error(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Session:   sessionWith(jokeAtoms),
		Clipboard: func(string) error { return errors.New("no clipboard utility") },
	})

	app = press(app, "y")

	if _, kind := app.Message(); kind != tui.MessageError {
		t.Errorf("expected error message, got type %d", kind)
	}
}

func TestApp_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "favorites.html")
	s := sessionWith(jokeBar)
	s.AddFavorite()
	app := tui.NewApp(tui.AppParams{
		Session:    s,
		ExportPath: func() (string, error) { return path, nil },
	})

	app, cmd := pressCmd(app, "E")
	app = runCmd(app, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if !strings.Contains(string(data), "A SQL query walks into a bar.") {
		t.Errorf("export missing favorite:\n%s", data)
	}
	text, kind := app.Message()
	if kind != tui.MessageSuccess || !strings.Contains(text, path) {
		t.Errorf("unexpected message %q (type %d)", text, kind)
	}
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(nil, nil)

	app = press(app, "?")
	if app.Mode() != tui.ModeHelp {
		t.Fatalf("expected help mode, got %d", app.Mode())
	}

	// q closes help instead of quitting
	app, cmd := pressCmd(app, "q")
	if cmd != nil {
		t.Error("q in help should not quit")
	}
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode, got %d", app.Mode())
	}
}

func TestApp_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			_, cmd := pressCmd(newTestApp(nil, nil), k)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("expected tea.QuitMsg")
			}
		})
	}
}

func TestApp_FavoriteThenRemoveScenario(t *testing.T) {
	src := &fakeSource{jokes: []model.Joke{jokeKnock, jokeBar}}
	app := newTestApp(nil, src)

	app, cmd := pressCmd(app, "f")
	app = runCmd(app, cmd)
	app, cmd = pressCmd(app, "f")
	app = runCmd(app, cmd)

	app = press(app, "h", "a", "d")

	s := app.Session()
	if h := s.History(); len(h) != 1 || h[0] != jokeBar {
		t.Errorf("expected history [bar], got %+v", h)
	}
	if len(s.Favorites()) != 0 {
		t.Errorf("expected no favorites, got %+v", s.Favorites())
	}
	if s.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", s.Cursor())
	}
}
