package interactions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// Client is the HTTP transport to the interaction API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new interaction API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type toggleRequest struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

// Toggle posts the desired state for one entity and returns the server's
// canonical settlement. Failures are classified so the coordinator can
// surface the right message: 401 prompts sign-in, 403 explains the
// restriction, timeouts and 5xx ask the user to retry.
func (c *Client) Toggle(ctx context.Context, kind, entityID, userID string, active bool) (*ToggleResponse, error) {
	body, err := json.Marshal(toggleRequest{UserID: userID, Active: active})
	if err != nil {
		return nil, fmt.Errorf("interactions: marshal toggle request: %w", err)
	}

	url := fmt.Sprintf("%s/interactions/%s/%s/toggle", c.baseURL, kind, entityID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("interactions: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, fmt.Errorf("interactions: toggle %s/%s timed out: %w", kind, entityID, ErrUnavailable)
		}
		return nil, fmt.Errorf("interactions: toggle %s/%s: %v: %w", kind, entityID, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("interactions: toggle %s/%s: %w", kind, entityID, ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("interactions: toggle %s/%s: %w", kind, entityID, ErrForbidden)
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("interactions: toggle %s/%s failed with status %d: %s: %w",
			kind, entityID, resp.StatusCode, string(body), ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("interactions: toggle %s/%s failed with status %d: %s: %w",
			kind, entityID, resp.StatusCode, string(body), ErrUnavailable)
	}

	var settled ToggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&settled); err != nil {
		return nil, fmt.Errorf("interactions: decode toggle response: %v: %w", err, ErrUnavailable)
	}

	return &settled, nil
}
