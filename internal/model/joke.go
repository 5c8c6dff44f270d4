package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrFetch marks any failure to obtain a joke from a Source.
var ErrFetch = errors.New("fetch joke")

// Joke is a single joke as served by the joke API. Identity is ID.
type Joke struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// String renders the joke as setup and punchline on separate lines.
func (j Joke) String() string {
	return fmt.Sprintf("%s\n%s", j.Setup, j.Punchline)
}

// Source supplies random jokes. Implementations return errors wrapping
// ErrFetch when no joke could be produced.
type Source interface {
	RandomJoke(ctx context.Context) (Joke, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (Joke, error)

// RandomJoke implements Source.
func (f SourceFunc) RandomJoke(ctx context.Context) (Joke, error) {
	return f(ctx)
}
