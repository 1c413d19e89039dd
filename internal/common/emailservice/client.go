package emailservice

import (
	"context"
	"fmt"
	"strings"

	httpclient "payment-reminder/internal/common/http"
)

// Message is the provider's send payload.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// APIError is returned when the provider answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("email service rejected message (status %d): %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client talks to the transactional email HTTP API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *httpclient.Client
}

func NewClient(endpoint, apiKey string, hc *httpclient.Client) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: hc,
	}
}

// Send posts msg with the bearer key. The key is sent even when empty so the
// provider, not this client, decides that it is missing.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	resp, err := c.httpClient.PostJSON(ctx, c.endpoint, headers, msg)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return nil
}

// Endpoint returns the URL messages are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}
