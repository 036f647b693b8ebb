package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// NewJSONHTTPClient returns an HTTPClient that sends and accepts JSON,
// applies timeout to every request (when positive) and retries transient
// failures once.
//
// Example usage:
//
//	client := utils.NewJSONHTTPClient(10 * time.Second)
//	resp, err := client.R().SetBody(payload).Post("https://api.example.com/send")
func NewJSONHTTPClient(timeout time.Duration) *HTTPClient {
	c := NewHTTPClient()
	c.SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}
