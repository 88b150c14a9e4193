// Package bolna provides a Bolna voice agent API client.
package bolna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	bolnaopts "github.com/unlistededge/voicegate/pkg/options/bolna"
)

// Client is a Bolna API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	opts       *bolnaopts.Options
}

// New creates a new Bolna client.
func New(opts *bolnaopts.Options) *Client {
	return &Client{
		baseURL: opts.APIURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		opts: opts,
	}
}

// Configured reports whether API credentials are set.
func (c *Client) Configured() bool {
	return c.opts.Configured()
}

// Recipient identifies the callee of an outbound call.
type Recipient struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// CreateCallRequest is the request body for initiating a call.
type CreateCallRequest struct {
	AgentID   string                 `json:"agent_id"`
	Recipient Recipient              `json:"recipient"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// CallResult is the response from call operations.
type CallResult struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

// CreateCall initiates an outbound call to the given phone number.
func (c *Client) CreateCall(ctx context.Context, phone, name string, metadata map[string]interface{}) (*CallResult, error) {
	if name == "" {
		name = "Customer"
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	reqBody := CreateCallRequest{
		AgentID: c.opts.AgentID,
		Recipient: Recipient{
			Phone: phone,
			Name:  name,
		},
		Metadata: metadata,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call request: %w", err)
	}

	var result CallResult
	if err := c.do(ctx, http.MethodPost, "/call", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CallStatus is the detailed status of a call.
type CallStatus struct {
	CallID          string `json:"call_id"`
	Status          string `json:"status"`
	DurationSeconds int    `json:"duration"`
	Transcript      string `json:"transcript,omitempty"`
	RecordingURL    string `json:"recording_url,omitempty"`
}

// GetCallStatus fetches the current status of a call.
func (c *Client) GetCallStatus(ctx context.Context, callID string) (*CallStatus, error) {
	var status CallStatus
	if err := c.do(ctx, http.MethodGet, "/call/"+callID, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// EndCall terminates an ongoing call.
func (c *Client) EndCall(ctx context.Context, callID string) (*CallResult, error) {
	var result CallResult
	if err := c.do(ctx, http.MethodPost, "/call/"+callID+"/end", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do executes an authenticated API request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
