package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/jk/internal/exporter"
	"github.com/nikbrunner/jk/internal/model"
)

// jokeFetchedMsg carries the result of one fetch back into Update.
type jokeFetchedMsg struct {
	joke    model.Joke
	err     error
	elapsed time.Duration
}

// exportDoneMsg reports the outcome of writing the favorites export.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// fetchJokeCmd asks src for a joke off the Update loop. The session is
// only mutated once the resulting message is handled.
func fetchJokeCmd(src model.Source) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		joke, err := src.RandomJoke(context.Background())
		return jokeFetchedMsg{joke: joke, err: err, elapsed: time.Since(start)}
	}
}

// exportCmd writes an already rendered document to path.
func exportCmd(path, doc string, count int) tea.Cmd {
	return func() tea.Msg {
		err := exporter.WriteFile(path, doc)
		return exportDoneMsg{path: path, count: count, err: err}
	}
}
