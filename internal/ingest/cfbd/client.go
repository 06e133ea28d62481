package cfbd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fortuna/gridiron/internal/faults"
)

const defaultBaseURL = "https://api.collegefootballdata.com"

// Client handles CollegeFootballData API requests. Every endpoint
// requires a bearer API key; a client constructed without one returns
// faults.ErrNoAPIKey before touching the network so callers can fall
// back to sample data.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a CFBD client
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether live calls are possible
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// FetchTeams fetches the FBS team directory
func (c *Client) FetchTeams(ctx context.Context) ([]interface{}, error) {
	return c.fetch(ctx, "/teams/fbs", nil)
}

// FetchRecords fetches season win/loss records
func (c *Client) FetchRecords(ctx context.Context, year int) ([]interface{}, error) {
	return c.fetch(ctx, "/records", url.Values{"year": {fmt.Sprint(year)}})
}

// FetchSPRatings fetches SP+ composite ratings for a season
func (c *Client) FetchSPRatings(ctx context.Context, year int) ([]interface{}, error) {
	return c.fetch(ctx, "/ratings/sp", url.Values{"year": {fmt.Sprint(year)}})
}

// FetchPPA fetches team predicted-points-added metrics for a season
func (c *Client) FetchPPA(ctx context.Context, year int) ([]interface{}, error) {
	return c.fetch(ctx, "/ppa/teams", url.Values{"year": {fmt.Sprint(year)}})
}

// FetchGames fetches the schedule for a season week
func (c *Client) FetchGames(ctx context.Context, year, week int) ([]interface{}, error) {
	return c.fetch(ctx, "/games", url.Values{
		"year": {fmt.Sprint(year)},
		"week": {fmt.Sprint(week)},
	})
}

// FetchLines fetches betting lines for a season week
func (c *Client) FetchLines(ctx context.Context, year, week int) ([]interface{}, error) {
	return c.fetch(ctx, "/lines", url.Values{
		"year": {fmt.Sprint(year)},
		"week": {fmt.Sprint(week)},
	})
}

// fetch issues an authenticated GET and decodes the JSON array response.
// All transport and decode failures come back as typed errors; nothing
// panics across this boundary.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]interface{}, error) {
	if c.apiKey == "" {
		return nil, faults.ErrNoAPIKey
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, faults.NewUpstreamError("cfbd", 0, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, faults.NewUpstreamError("cfbd", 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, faults.NewUpstreamError("cfbd", resp.StatusCode, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, faults.NewUpstreamError("cfbd", resp.StatusCode, truncate(string(body), 200))
	}

	var result []interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, faults.NewUpstreamError("cfbd", resp.StatusCode, fmt.Sprintf("decoding response: %v", err))
	}

	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
