// Package automation forwards call events to automation platform webhooks.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	automationopts "github.com/unlistededge/voicegate/pkg/options/automation"
)

// Client forwards event payloads to configured webhook URLs.
type Client struct {
	httpClient *http.Client
	opts       *automationopts.Options
}

// New creates a new automation webhook client.
func New(opts *automationopts.Options) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		opts: opts,
	}
}

// CallEndedConfigured reports whether a call-ended webhook URL is set.
func (c *Client) CallEndedConfigured() bool {
	return c.opts.CallEndedURL != ""
}

// LeadSavedConfigured reports whether a lead-saved webhook URL is set.
func (c *Client) LeadSavedConfigured() bool {
	return c.opts.LeadSavedURL != ""
}

// CallEnded forwards a call-ended payload downstream.
func (c *Client) CallEnded(ctx context.Context, payload interface{}) error {
	if !c.CallEndedConfigured() {
		return nil
	}
	return c.post(ctx, c.opts.CallEndedURL, payload)
}

// LeadSaved forwards a captured lead downstream.
func (c *Client) LeadSaved(ctx context.Context, payload interface{}) error {
	if !c.LeadSavedConfigured() {
		return nil
	}
	return c.post(ctx, c.opts.LeadSavedURL, payload)
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("x-api-key", c.opts.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}
