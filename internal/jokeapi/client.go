package jokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikbrunner/jk/internal/model"
)

const (
	DefaultBaseURL = "https://official-joke-api.appspot.com"
	DefaultTimeout = 10 * time.Second

	randomJokePath = "/random_joke"
	userAgent      = "jk/1 (+https://github.com/nikbrunner/jk)"
	maxBodyBytes   = 64 << 10
)

var (
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// Client fetches jokes from the official joke API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	BaseURL    string        // optional, uses DefaultBaseURL if empty
	Timeout    time.Duration // optional, uses DefaultTimeout if zero
	HTTPClient *http.Client  // optional, built from Timeout if nil
	Logger     *slog.Logger  // optional, discards if nil
}

// NewClient creates a new joke API client.
func NewClient(params ClientParams) *Client {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RandomJoke fetches a single random joke. Every error wraps model.ErrFetch.
func (c *Client) RandomJoke(ctx context.Context) (model.Joke, error) {
	joke, err := c.randomJoke(ctx)
	if err != nil {
		return model.Joke{}, fmt.Errorf("%w: %w", model.ErrFetch, err)
	}
	return joke, nil
}

// RandomJokes fetches n jokes one request at a time, stopping at the
// first failure. Jokes fetched before the failure are returned with it.
func (c *Client) RandomJokes(ctx context.Context, n int) ([]model.Joke, error) {
	jokes := make([]model.Joke, 0, n)
	for i := 0; i < n; i++ {
		joke, err := c.RandomJoke(ctx)
		if err != nil {
			return jokes, err
		}
		jokes = append(jokes, joke)
	}
	return jokes, nil
}

func (c *Client) randomJoke(ctx context.Context) (model.Joke, error) {
	requestID := uuid.New().String()
	logger := c.logger.With("request_id", requestID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+randomJokePath, nil)
	if err != nil {
		return model.Joke{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug("fetching joke", "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("joke request failed", "error", err, "duration", time.Since(start))
		return model.Joke{}, fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Joke{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("joke request rejected", "status", resp.StatusCode, "duration", time.Since(start))
		return model.Joke{}, fmt.Errorf("%w: status %d: %s", ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiJoke
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn("malformed joke payload", "error", err)
		return model.Joke{}, fmt.Errorf("%w: unmarshal response: %v", ErrInvalidResponse, err)
	}
	if !payload.valid() {
		logger.Warn("incomplete joke payload", "body", string(body))
		return model.Joke{}, fmt.Errorf("%w: missing id, setup or punchline", ErrInvalidResponse)
	}

	joke := model.Joke{
		ID:        *payload.ID,
		Type:      payload.Type,
		Setup:     *payload.Setup,
		Punchline: *payload.Punchline,
	}

	logger.Info("fetched joke", "joke_id", joke.ID, "type", joke.Type, "duration", time.Since(start))
	return joke, nil
}
