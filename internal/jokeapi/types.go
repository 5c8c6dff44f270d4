package jokeapi

// apiJoke is the payload of GET /random_joke. Fields are pointers so a
// missing key can be told apart from an empty value.
type apiJoke struct {
	ID        *int    `json:"id"`
	Type      string  `json:"type"`
	Setup     *string `json:"setup"`
	Punchline *string `json:"punchline"`
}

// valid reports whether the payload carries everything a Joke needs.
func (j apiJoke) valid() bool {
	return j.ID != nil && j.Setup != nil && j.Punchline != nil
}
