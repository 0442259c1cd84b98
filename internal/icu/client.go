// Package icu is the HTTP client adapter for the intervals.icu REST API.
//
// It issues exactly one authenticated request per call (plus the widening
// re-fetch get_activities is documented to make) and classifies every
// failure into the kinds in errors.go so callers can react per kind.
package icu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/icu-tools/intervals-mcp/internal/config"
)

const userAgent = "intervals-mcp/1.0"

// basicAuthUser is the fixed username intervals.icu expects; the API key
// goes in the password slot.
const basicAuthUser = "API_KEY"

// Client talks to the intervals.icu API. It holds no per-request state, so
// one instance is safe to share across concurrent tool invocations.
type Client struct {
	baseURL   string
	athleteID string
	apiKey    string
	httpc     *http.Client
	limiter   *rate.Limiter
	log       zerolog.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client from validated configuration.
func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		athleteID: cfg.AthleteID,
		apiKey:    cfg.APIKey,
		httpc:     &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AthleteID returns the configured default athlete.
func (c *Client) AthleteID() string { return c.athleteID }

// get performs one authenticated GET and returns the decoded body. All
// failures come back as *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	// Pacing, not retry: wait for budget, bounded by the caller's context.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}

	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("request failed")
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("intervals.icu request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("HTTP error")
		return nil, &APIError{Kind: classify(resp.StatusCode), StatusCode: resp.StatusCode}
	}

	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		c.log.Error().Str("path", path).Msg("invalid JSON in response")
		return nil, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode}
	}
	return json.RawMessage(body), nil
}

// ─── Typed fetchers ──────────────────────────────────────────────────────────

// Activities lists activities for an athlete between oldest and newest
// (YYYY-MM-DD, inclusive), capped at limit.
func (c *Client) Activities(ctx context.Context, athleteID, oldest, newest string, limit int) (json.RawMessage, error) {
	if athleteID == "" {
		return nil, invalidParam("athlete id is required")
	}
	q := url.Values{}
	q.Set("oldest", oldest)
	q.Set("newest", newest)
	q.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, fmt.Sprintf("/athlete/%s/activities", url.PathEscape(athleteID)), q)
}

// Activity fetches one activity by id.
func (c *Client) Activity(ctx context.Context, activityID string) (json.RawMessage, error) {
	if activityID == "" {
		return nil, invalidParam("activity id is required")
	}
	return c.get(ctx, fmt.Sprintf("/activity/%s", url.PathEscape(activityID)), nil)
}

// ActivityIntervals fetches the interval analysis for one activity.
func (c *Client) ActivityIntervals(ctx context.Context, activityID string) (json.RawMessage, error) {
	if activityID == "" {
		return nil, invalidParam("activity id is required")
	}
	return c.get(ctx, fmt.Sprintf("/activity/%s/intervals", url.PathEscape(activityID)), nil)
}

// Events lists calendar events for an athlete between oldest and newest.
func (c *Client) Events(ctx context.Context, athleteID, oldest, newest string) (json.RawMessage, error) {
	if athleteID == "" {
		return nil, invalidParam("athlete id is required")
	}
	q := url.Values{}
	q.Set("oldest", oldest)
	q.Set("newest", newest)
	return c.get(ctx, fmt.Sprintf("/athlete/%s/events", url.PathEscape(athleteID)), q)
}

// Event fetches one calendar event by id.
func (c *Client) Event(ctx context.Context, athleteID, eventID string) (json.RawMessage, error) {
	if athleteID == "" {
		return nil, invalidParam("athlete id is required")
	}
	if eventID == "" {
		return nil, invalidParam("event id is required")
	}
	return c.get(ctx, fmt.Sprintf("/athlete/%s/event/%s", url.PathEscape(athleteID), url.PathEscape(eventID)), nil)
}

// Wellness lists wellness records for an athlete between oldest and newest.
func (c *Client) Wellness(ctx context.Context, athleteID, oldest, newest string) (json.RawMessage, error) {
	if athleteID == "" {
		return nil, invalidParam("athlete id is required")
	}
	q := url.Values{}
	q.Set("oldest", oldest)
	q.Set("newest", newest)
	return c.get(ctx, fmt.Sprintf("/athlete/%s/wellness", url.PathEscape(athleteID)), q)
}
