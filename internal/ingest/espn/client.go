package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/fortuna/gridiron/internal/faults"
)

const (
	BaseURL         = "https://site.api.espn.com/apis/site/v2/sports"
	CollegeFootball = "football/college-football"
)

// Client handles ESPN API requests
// Note: Uses curl internally because ESPN blocks Go's HTTP client fingerprint
type Client struct {
	baseURL string
}

// New creates a new ESPN API client with a custom base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
	}
}

// FetchScoreboard fetches college football games for a specific date.
// If date is zero, fetches ESPN's "today" slate.
func (c *Client) FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	var url string
	if date.IsZero() {
		url = fmt.Sprintf("%s/%s/scoreboard", c.baseURL, CollegeFootball)
	} else {
		url = fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, CollegeFootball, date.Format("20060102"))
	}

	return c.fetch(ctx, url)
}

// FetchNews fetches the college football news feed
func (c *Client) FetchNews(ctx context.Context) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/news", c.baseURL, CollegeFootball)
	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request using curl
// ESPN blocks Go's HTTP client but curl works reliably
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", url)

	output, err := cmd.Output()
	if err != nil {
		log.Printf("[espn-client] curl failed: %v", err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, faults.NewUpstreamError("espn", 0, fmt.Sprintf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr)))
		}
		return nil, faults.NewUpstreamError("espn", 0, fmt.Sprintf("curl execution failed: %v", err))
	}

	// HTML instead of JSON means an upstream error page (403, 404, ...)
	if len(output) > 0 && output[0] == '<' {
		return nil, faults.NewUpstreamError("espn", 0, fmt.Sprintf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)])))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, faults.NewUpstreamError("espn", 0, fmt.Sprintf("decoding response: %v", err))
	}

	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
