package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RetryPolicy bounds how often and how fast a failed upstream fetch is
// retried. Delay doubles after every failed attempt.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// SteamGame is one entry of the upstream Steam game list.
type SteamGame struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Image string      `json:"image"`
	Price float64     `json:"price"` // cents
}

// Client fetches the Steam game list from the catalogue API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
}

func NewClient(baseURL string, retry RetryPolicy) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      retry,
	}
}

// FetchGames calls GET /api/steam-games, retrying with exponential backoff
// up to the policy's MaxRetries before giving up.
func (c *Client) FetchGames(ctx context.Context) ([]SteamGame, error) {
	delay := c.retry.Delay
	var lastErr error
	for attempt := 0; ; attempt++ {
		games, err := c.fetchOnce(ctx)
		if err == nil {
			return games, nil
		}
		lastErr = err
		if attempt >= c.retry.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("steam-games fetch after %d retries: %w", c.retry.MaxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]SteamGame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/steam-games", nil)
	if err != nil {
		return nil, fmt.Errorf("steam-games request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("steam-games fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("steam-games returned %d: %s", resp.StatusCode, string(body))
	}

	var games []SteamGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("steam-games decode: %w", err)
	}
	return games, nil
}
