package gaggiuino

import (
	"net/http"
	"time"
)

// WithBaseURL sets a custom base address for the machine (trailing path
// separators are stripped at construction time)
func WithBaseURL(baseURL string) func(*Client) {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets a custom per-request timeout
func WithTimeout(timeout time.Duration) func(*Client) {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithShotFetchTimeout sets a custom overall timeout for multi-shot retrieval
func WithShotFetchTimeout(timeout time.Duration) func(*Client) {
	return func(c *Client) {
		c.shotFetchTimeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client (overriding the per-request
// timeout configured on the default one)
func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		c.logger = logger
	}
}
