package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// APIClient handles communication with the Inventory API Service
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		retryDelay: 1 * time.Second,
	}
}

// weightUpdateRequest is the body of PUT /devices/{id}/weight
type weightUpdateRequest struct {
	NewWeight float64 `json:"new_weight"`
}

// envelope mirrors the API's response envelope
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateWeight reports a new weight reading for a device. Transport
// failures are retried with exponential backoff; an explicit rejection
// from the API (e.g. unknown device) is not.
func (c *APIClient) UpdateWeight(ctx context.Context, deviceID uint, weight float64) error {
	path := fmt.Sprintf("/devices/%d/weight", deviceID)

	return c.retryWithBackoff(ctx, func() error {
		resp, err := c.makeRequest(ctx, http.MethodPut, path, weightUpdateRequest{NewWeight: weight})
		if err != nil {
			return fmt.Errorf("failed to update weight: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}

		var response envelope
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if !response.Success {
			return permanentError{fmt.Errorf("API rejected reading: %s", response.Message)}
		}
		return nil
	})
}

// Health checks if the API Service is healthy
func (c *APIClient) Health(ctx context.Context) error {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return fmt.Errorf("failed to check API health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// permanentError marks failures that retrying cannot fix
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// retryWithBackoff executes an operation with exponential backoff
func (c *APIClient) retryWithBackoff(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if perm, ok := err.(permanentError); ok {
			return perm.err
		}

		lastErr = err
		if attempt == c.maxRetries {
			break
		}

		delay := time.Duration(float64(c.retryDelay) * math.Pow(2, float64(attempt)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// makeRequest makes an HTTP request to the API Service
func (c *APIClient) makeRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "scale-ingestor-service")

	return c.httpClient.Do(req)
}
