// Package omdb provides the movie-metadata lookup client for the OMDb
// service, with bounded retry on transient network failure and typed
// classification of every failure mode.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/logging"
	"github.com/latefee/latefee/pkg/retry"
)

// Record is the normalized result of a successful lookup. Year and Rating
// are kept as the raw strings the service returned; mapping them into typed
// movie fields (with documented defaults) is the caller's concern.
type Record struct {
	Title    string
	Director string
	Year     string
	Rating   string
	Poster   string
}

// payload mirrors the OMDb response body. Response/Error carry the
// application-level success flag and error message.
type payload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Config holds configuration for creating a lookup client.
type Config struct {
	BaseURL    string        // e.g. "http://www.omdbapi.com/"
	APIKey     string        // required by the service on every request
	MaxRetries int           // total attempts for transient failures, >= 1
	Timeout    time.Duration // per-attempt request timeout
	// RetryDelay is the fixed wait between attempts. Zero means one second.
	RetryDelay time.Duration
	// SnapshotPath receives a best-effort copy of the last successful raw
	// payload. Empty disables the write.
	SnapshotPath string
}

// Client queries the OMDb lookup service by title (and optional year).
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	maxRetries   int
	retryDelay   time.Duration
	snapshotPath string
	logger       *zap.Logger
}

// NewClient creates a lookup client. Pass a nil httpClient to get one with
// the configured per-attempt timeout.
func NewClient(cfg *Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("max retries must be >= 1, got %d", cfg.MaxRetries)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = time.Second
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   retryDelay,
		snapshotPath: cfg.SnapshotPath,
		logger:       logger.Named("omdb"),
	}, nil
}

// Fetch looks up a movie by title, optionally filtered by year. Transient
// transport failures are retried with a fixed delay up to the configured
// number of attempts; every other failure stops immediately. The returned
// error is always a *omdb.Error, except for empty titles (validation) and
// context cancellation during a retry wait.
func (c *Client) Fetch(ctx context.Context, title, year string) (*Record, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title", "title must not be empty")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year != "" {
		params.Set("y", year)
	}
	requestURL := c.baseURL + "?" + params.Encode()

	attempts := 0
	cfg := retry.FixedDelayConfig(c.maxRetries, c.retryDelay)
	record, err := retry.DoWithResult(ctx, cfg, func() (*Record, error) {
		attempts++
		c.logger.Debug("Lookup attempt",
			zap.String("title", title),
			zap.Int("attempt", attempts),
			zap.Int("max_attempts", c.maxRetries))
		return c.attempt(ctx, requestURL, title)
	})
	if err == nil && record != nil {
		return record, nil
	}

	var lookupErr *Error
	switch {
	case errors.As(err, &lookupErr) && lookupErr.Kind == ErrorKindTransient:
		// Retry budget spent on transport failures.
		c.logger.Error("Lookup attempts exhausted",
			zap.String("title", title),
			zap.Int("attempts", attempts),
			zap.String("error", logging.SanitizeError(err)))
		return nil, &Error{Kind: ErrorKindExhausted, Attempts: attempts, Cause: lookupErr.Cause}
	case errors.As(err, &lookupErr):
		return nil, lookupErr
	case err != nil:
		// Context cancellation during a retry wait surfaces as-is so
		// callers can tell a dead client from a dead service.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, newUnexpectedError("", err)
	}

	// Never return an absent result silently.
	c.logger.Error("Lookup produced no result and no error", zap.String("title", title))
	return nil, newUnexpectedError(fmt.Sprintf("failed to fetch data for %q: unknown error", title), nil)
}

// attempt performs a single request and classifies the outcome.
func (c *Client) attempt(ctx context.Context, requestURL, title string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, newUnexpectedError("failed to build lookup request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			// Connection refused, DNS failure, timeout: worth retrying.
			// Transport errors embed the request URL, API key included.
			c.logger.Warn("Lookup attempt failed",
				zap.String("title", title),
				zap.String("error", logging.SanitizeError(err)))
			return nil, newTransientError(err)
		}
		c.logger.Error("Unexpected transport error",
			zap.String("title", title),
			zap.String("error", logging.SanitizeError(err)))
		return nil, newUnexpectedError("", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Retrying won't fix 4xx/5xx responses from the lookup service.
		c.logger.Error("Lookup returned HTTP error",
			zap.String("title", title),
			zap.Int("status", resp.StatusCode))
		return nil, newHTTPStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newUnexpectedError("failed to read lookup response", err)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		c.logger.Error("Malformed lookup response",
			zap.String("title", title),
			zap.Error(err))
		return nil, newUnexpectedError("malformed lookup response", err)
	}

	if !strings.EqualFold(p.Response, "True") {
		c.logger.Warn("Lookup reported application error",
			zap.String("title", title),
			zap.String("message", p.Error))
		return nil, newNotFoundError(p.Error)
	}

	c.writeSnapshot(body, title)

	c.logger.Info("Lookup succeeded",
		zap.String("title", title),
		zap.String("matched_title", p.Title))

	return &Record{
		Title:    p.Title,
		Director: p.Director,
		Year:     p.Year,
		Rating:   p.ImdbRating,
		Poster:   p.Poster,
	}, nil
}

// writeSnapshot persists the raw payload for inspection. Failures are logged
// and otherwise ignored; the snapshot never affects the lookup result.
func (c *Client) writeSnapshot(body []byte, title string) {
	if c.snapshotPath == "" {
		return
	}
	if dir := filepath.Dir(c.snapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.logger.Warn("Could not create snapshot directory",
				zap.String("path", c.snapshotPath),
				zap.Error(err))
			return
		}
	}
	if err := os.WriteFile(c.snapshotPath, body, 0o644); err != nil {
		c.logger.Warn("Could not write snapshot",
			zap.String("path", c.snapshotPath),
			zap.String("title", title),
			zap.Error(err))
	}
}
