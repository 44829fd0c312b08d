package flowerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bloombuilder/internal/models"
)

const (
	resourcePath             = "/api/flowers"
	errorBodyReadLimit int64 = 4096
)

var errBaseURLRequired = errors.New("flower API base URL is required")

// APIError is returned for any non-success response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flower api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 400 from the API.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// Client talks to the /api/flowers resource.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New builds a client for the API served at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// List fetches every flower.
func (c *Client) List(ctx context.Context) ([]models.Flower, error) {
	var flowers []models.Flower
	if err := c.do(ctx, http.MethodGet, resourcePath, nil, http.StatusOK, &flowers); err != nil {
		return nil, err
	}
	if flowers == nil {
		flowers = []models.Flower{}
	}
	return flowers, nil
}

// Get fetches one flower.
func (c *Client) Get(ctx context.Context, id string) (*models.Flower, error) {
	var flower models.Flower
	if err := c.do(ctx, http.MethodGet, flowerPath(id), nil, http.StatusOK, &flower); err != nil {
		return nil, err
	}
	return &flower, nil
}

// Create submits a new flower and returns the stored record.
func (c *Client) Create(ctx context.Context, input models.FlowerInput) (*models.Flower, error) {
	var flower models.Flower
	if err := c.do(ctx, http.MethodPost, resourcePath, input, http.StatusCreated, &flower); err != nil {
		return nil, err
	}
	return &flower, nil
}

// Update sends a partial update and returns the full updated record.
func (c *Client) Update(ctx context.Context, id string, patch models.FlowerPatch) (*models.Flower, error) {
	var flower models.Flower
	if err := c.do(ctx, http.MethodPut, flowerPath(id), patch, http.StatusOK, &flower); err != nil {
		return nil, err
	}
	return &flower, nil
}

// Delete removes a flower.
func (c *Client) Delete(ctx context.Context, id string) error {
	var result struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodDelete, flowerPath(id), nil, http.StatusOK, &result); err != nil {
		return err
	}
	if !result.Success {
		return &APIError{StatusCode: http.StatusOK, Message: "delete was not acknowledged"}
	}
	return nil
}

func flowerPath(id string) string {
	return resourcePath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var payload struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
