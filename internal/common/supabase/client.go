// Package supabase is a minimal PostgREST client for the project's data API.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	httpclient "payment-reminder/internal/common/http"
)

// APIError mirrors the PostgREST error body.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("supabase request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *httpclient.Client
}

// NewClient builds a client for the project at baseURL authenticated with
// the service role key.
func NewClient(baseURL, serviceKey string, hc *httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: hc,
	}
}

// Insert writes row into table. Nothing is returned on success.
func (c *Client) Insert(ctx context.Context, table string, row interface{}) error {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)

	headers := map[string]string{
		"apikey":        c.serviceKey,
		"Authorization": "Bearer " + c.serviceKey,
		"Prefer":        "return=minimal",
	}

	resp, err := c.httpClient.PostJSON(ctx, url, headers, row)
	if err != nil {
		return err
	}
	if resp.OK() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(resp.Body))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}
