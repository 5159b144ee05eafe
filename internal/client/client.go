// Package client calls a running relay over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/physlab/problem-relay/apimodels"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	slog.Debug("Creating relay client", "base_url", baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("relay base URL cannot be empty")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Result is a decoded parse-problem reply. Exactly one of Parsed and Failure
// is set, depending on the success flag.
type Result struct {
	StatusCode int
	Parsed     *apimodels.ParseResponse
	Failure    *apimodels.ErrorResponse
}

func (c *Client) Health(ctx context.Context) (*apimodels.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health request: unexpected status %d", resp.StatusCode)
	}

	var health apimodels.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &health, nil
}

// ParseProblem posts a description. Relay-side failures come back as a
// Result with Failure set; err is reserved for transport and decode errors.
func (c *Client) ParseProblem(ctx context.Context, description string) (*Result, error) {
	payload, err := json.Marshal(apimodels.ParseRequest{Description: description})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parse-problem", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read parse response: %w", err)
	}

	var probe struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("decode parse response (status %d): %w", resp.StatusCode, err)
	}

	result := &Result{StatusCode: resp.StatusCode}
	if probe.Success {
		result.Parsed = &apimodels.ParseResponse{}
		err = json.Unmarshal(body, result.Parsed)
	} else {
		result.Failure = &apimodels.ErrorResponse{}
		err = json.Unmarshal(body, result.Failure)
	}
	if err != nil {
		return nil, fmt.Errorf("decode parse response: %w", err)
	}
	return result, nil
}
