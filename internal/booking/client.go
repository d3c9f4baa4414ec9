// Package booking submits completed drafts to the booking API and turns
// them into confirmed appointments.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// SubmitRequest is the payload the booking API accepts.
type SubmitRequest struct {
	ProviderID string            `json:"provider_id"`
	ServiceID  string            `json:"service_id"`
	Date       string            `json:"date"`
	StartTime  string            `json:"start_time"`
	EndTime    string            `json:"end_time"`
	FormData   map[string]string `json:"form_data,omitempty"`
}

// Client is the HTTP client for the booking API.
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

// NewClient creates a new booking API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Submit posts a booking and returns the created appointment id.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("booking: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("booking: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("booking: submit for %s: %w", req.ProviderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("booking: submit for %s failed with status %d: %s",
			req.ProviderID, resp.StatusCode, string(respBody))
	}

	var out struct {
		AppointmentID string `json:"appointment_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("booking: decode response: %w", err)
	}
	if out.AppointmentID == "" {
		return "", fmt.Errorf("booking: response missing appointment id")
	}

	return out.AppointmentID, nil
}
