// Package client implements the form-filling side of the pipeline: the
// submission client that POSTs a record to the email API, and the form
// controller that drives validation, draft persistence and submission
// the way the website's forms do, independent of any UI toolkit.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/simphiwe/guesthouse/internal/form"
)

// Response is the email API's response envelope.
type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

// Client submits form records to the email API. One outbound call per
// Submit; retrying is the caller's decision.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a submission client for the given endpoint URL
// (e.g. "http://localhost:3000/api/send-email").
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit POSTs the record as JSON and normalizes the outcome. A non-2xx
// response is reported as an error carrying the server's message when
// the body is readable, or a generic status-code message otherwise.
func (c *Client) Submit(ctx context.Context, rec form.Record) (Response, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode form data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to reach email API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed Response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the server's own error message when the body parses.
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && parsed.Message != "" {
			return parsed, fmt.Errorf("%s", parsed.Message)
		}
		return Response{}, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return parsed, nil
}
