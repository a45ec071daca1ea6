package schedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public deployment of the scheduling service.
const DefaultBaseURL = "https://cpu-scheduler-backend.onrender.com"

// A ServiceError is returned when the service answers with a non-success
// status.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scheduling service: %s", http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("scheduling service: %s: %s",
		http.StatusText(e.StatusCode), e.Message)
}

// Client sends schedule requests.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Schedule validates req, sends it, and returns the normalized result. The
// returned schedule is validated as well.
func (c *Client) Schedule(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/schedule/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	rsp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("scheduling service: %w", err)
	}
	defer rsp.Body.Close()

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("scheduling service: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &payload)

		return nil, &ServiceError{StatusCode: rsp.StatusCode, Message: payload.Error}
	}

	result := &Result{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("scheduling service: decoding response: %w", err)
	}
	result.normalize()

	if err := result.Gantt.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling service: %w", err)
	}

	return result, nil
}
