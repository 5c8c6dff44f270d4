package search

import (
	"github.com/nikbrunner/jk/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match against the session history.
type Result struct {
	Index          int // position in the history slice
	Joke           model.Joke
	MatchedIndexes []int // byte offsets into Text(Joke)
	Score          int
}

// Text returns the string a joke is matched against.
func Text(j model.Joke) string {
	return j.Setup + " " + j.Punchline
}

// jokeTexts implements fuzzy.Source for a joke slice.
type jokeTexts []model.Joke

func (jt jokeTexts) String(i int) string {
	return Text(jt[i])
}

func (jt jokeTexts) Len() int {
	return len(jt)
}

// FuzzySearchJokes searches jokes by setup and punchline using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchJokes(jokes []model.Joke, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, jokeTexts(jokes))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Index:          m.Index,
			Joke:           jokes[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
