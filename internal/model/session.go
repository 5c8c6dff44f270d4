package model

import (
	"context"
	"errors"
	"fmt"
)

// NoCursor is the cursor value of a session with an empty history.
const NoCursor = -1

// Direction selects which way MoveCursor steps through the history.
type Direction int

const (
	Previous Direction = iota
	Next
)

// EditBuffer is the staging copy of the current joke's editable text.
type EditBuffer struct {
	Setup     string
	Punchline string
}

// Session holds the jokes fetched during one run of the application:
// the ordered history, a cursor into it, the favorites, and the edit
// buffer mirroring the joke under the cursor.
//
// A Session is not safe for concurrent use. The TUI only touches it from
// its Update loop.
type Session struct {
	id        string
	history   []Joke
	cursor    int
	favorites []Joke
	edit      EditBuffer
}

// NewSession creates an empty Session with no cursor.
func NewSession() *Session {
	return &Session{
		id:        generateSessionID(),
		history:   []Joke{},
		cursor:    NoCursor,
		favorites: []Joke{},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Len returns the number of jokes in the history.
func (s *Session) Len() int {
	return len(s.history)
}

// Cursor returns the index of the current joke, or NoCursor.
func (s *Session) Cursor() int {
	return s.cursor
}

// HasCursor reports whether a joke is currently selected.
func (s *Session) HasCursor() bool {
	return s.cursor >= 0 && s.cursor < len(s.history)
}

// Current returns the joke under the cursor.
func (s *Session) Current() (Joke, bool) {
	if !s.HasCursor() {
		return Joke{}, false
	}
	return s.history[s.cursor], true
}

// History returns a copy of the fetched jokes in display order.
func (s *Session) History() []Joke {
	out := make([]Joke, len(s.history))
	copy(out, s.history)
	return out
}

// Favorites returns a copy of the favorites in insertion order.
func (s *Session) Favorites() []Joke {
	out := make([]Joke, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// IsFavorite reports whether a joke with the given id is a favorite.
func (s *Session) IsFavorite(id int) bool {
	return s.favoriteIndex(id) >= 0
}

// IndexOf returns the history index of the first joke with the given id,
// or -1.
func (s *Session) IndexOf(id int) int {
	for i := range s.history {
		if s.history[i].ID == id {
			return i
		}
	}
	return -1
}

// Edit returns the edit buffer. It is the zero value when there is no cursor.
func (s *Session) Edit() EditBuffer {
	return s.edit
}

// Position renders the cursor as a one-based "i/n" counter, "0/0" when empty.
func (s *Session) Position() string {
	if !s.HasCursor() {
		return fmt.Sprintf("0/%d", len(s.history))
	}
	return fmt.Sprintf("%d/%d", s.cursor+1, len(s.history))
}

// FetchAndAppend asks src for a joke and appends it. On failure the
// session is left untouched and the returned error wraps ErrFetch.
func (s *Session) FetchAndAppend(ctx context.Context, src Source) (Joke, error) {
	joke, err := src.RandomJoke(ctx)
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return Joke{}, err
	}
	s.Append(joke)
	return joke, nil
}

// Append adds joke to the end of the history and moves the cursor to it.
func (s *Session) Append(joke Joke) {
	s.history = append(s.history, joke)
	s.setCursor(len(s.history) - 1)
}

// MoveCursor steps the cursor one joke in dir. Stepping past either end is
// a no-op. Returns true if the cursor moved.
func (s *Session) MoveCursor(dir Direction) bool {
	switch dir {
	case Previous:
		if s.cursor > 0 {
			s.setCursor(s.cursor - 1)
			return true
		}
	case Next:
		if s.cursor < len(s.history)-1 {
			s.setCursor(s.cursor + 1)
			return true
		}
	}
	return false
}

// JumpTo moves the cursor to index. Out of range indexes are ignored.
func (s *Session) JumpTo(index int) bool {
	if index < 0 || index >= len(s.history) || index == s.cursor {
		return false
	}
	s.setCursor(index)
	return true
}

// SetEdit stages text in the edit buffer without touching the history.
func (s *Session) SetEdit(setup, punchline string) {
	if !s.HasCursor() {
		return
	}
	s.edit = EditBuffer{Setup: setup, Punchline: punchline}
}

// DiscardEdit restores the edit buffer from the current joke.
func (s *Session) DiscardEdit() {
	s.resyncEdit()
}

// SaveEdit overwrites the current joke's setup and punchline, and the
// matching favorite's copy if there is one. No-op without a cursor.
func (s *Session) SaveEdit(setup, punchline string) bool {
	if !s.HasCursor() {
		return false
	}

	joke := &s.history[s.cursor]
	joke.Setup = setup
	joke.Punchline = punchline

	if i := s.favoriteIndex(joke.ID); i >= 0 {
		s.favorites[i].Setup = setup
		s.favorites[i].Punchline = punchline
	}

	s.resyncEdit()
	return true
}

// AddFavorite stores a copy of the current joke in the favorites.
// Returns false if there is no cursor or the joke is already a favorite.
func (s *Session) AddFavorite() bool {
	joke, ok := s.Current()
	if !ok || s.IsFavorite(joke.ID) {
		return false
	}
	s.favorites = append(s.favorites, joke)
	return true
}

// RemoveFavorite drops the favorite with the given id, if present.
func (s *Session) RemoveFavorite(id int) bool {
	i := s.favoriteIndex(id)
	if i < 0 {
		return false
	}
	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	return true
}

// RemoveCurrent deletes the current joke from the history and from the
// favorites. The cursor moves to the previous joke, or stays at the first
// one when the removed joke was first. It becomes NoCursor once the
// history is empty.
func (s *Session) RemoveCurrent() (Joke, bool) {
	joke, ok := s.Current()
	if !ok {
		return Joke{}, false
	}

	s.history = append(s.history[:s.cursor], s.history[s.cursor+1:]...)
	s.RemoveFavorite(joke.ID)

	if len(s.history) == 0 {
		s.setCursor(NoCursor)
	} else {
		s.setCursor(max(0, s.cursor-1))
	}
	return joke, true
}

// setCursor is the single place the cursor changes; the edit buffer
// always follows it.
func (s *Session) setCursor(index int) {
	s.cursor = index
	s.resyncEdit()
}

func (s *Session) resyncEdit() {
	joke, ok := s.Current()
	if !ok {
		s.edit = EditBuffer{}
		return
	}
	s.edit = EditBuffer{Setup: joke.Setup, Punchline: joke.Punchline}
}

func (s *Session) favoriteIndex(id int) int {
	for i := range s.favorites {
		if s.favorites[i].ID == id {
			return i
		}
	}
	return -1
}
