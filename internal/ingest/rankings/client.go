package rankings

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 2 * time.Second
)

// Client fetches the AP Top 25 poll page. The poll table is built
// client-side, so a headless browser renders the page before parsing.
type Client struct {
	pollURL  string
	interval time.Duration

	mu          sync.Mutex
	lastRequest time.Time

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a poll scraper client
func NewClient(pollURL string) (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		pollURL:  pollURL,
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases browser resources
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchPollHTML fetches the rendered poll page with rate limiting
func (c *Client) FetchPollHTML(ctx context.Context) (string, error) {
	if wait := c.reserve(time.Now()); wait > 0 {
		log.Printf("[rankings] rate limiting: waiting %v before next request", wait)
		time.Sleep(wait)
	}

	return c.fetch(ctx)
}

// reserve claims the next request slot and returns how long the caller
// must wait to honor the minimum interval. Safe for concurrent callers;
// each claimed slot is spaced a full interval after the previous one.
func (c *Client) reserve(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var wait time.Duration
	if !c.lastRequest.IsZero() {
		if elapsed := now.Sub(c.lastRequest); elapsed < c.interval {
			wait = c.interval - elapsed
		}
	}
	c.lastRequest = now.Add(wait)
	return wait
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(c.allocCtx)
	defer cancelBrowser()

	// The browser context cannot chain off the caller's context, so the
	// caller deadline is approximated by a fixed render timeout here.
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(c.pollURL),
		chromedp.Sleep(2*time.Second), // let the table render
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	return html, nil
}
