// Package client provides an HTTP client for the Spendwize API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"spendwize/internal/reports"
)

// APIError is a non-2xx response decoded from the API error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Series is an expense series and the window it covers.
type Series struct {
	Window reports.Window  `json:"window"`
	Points []reports.Point `json:"points"`
}

// Dashboard is the combined series and category breakdown.
type Dashboard struct {
	Series     Series          `json:"series"`
	Categories []reports.Slice `json:"categories"`
}

// Client communicates with the Spendwize API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets the bearer token sent on every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	c.SetToken(result.AccessToken)
	return nil
}

// ExpenseSeries fetches the bucketed expense series for r.
func (c *Client) ExpenseSeries(ctx context.Context, r reports.Range) (*Series, error) {
	var result Series
	path := "/api/v1/reports/expenses-over-time?range=" + url.QueryEscape(string(r))
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching expense series: %w", err)
	}
	return &result, nil
}

// ExpensesByCategory fetches the all-time category breakdown.
func (c *Client) ExpensesByCategory(ctx context.Context) ([]reports.Slice, error) {
	var result struct {
		Categories []reports.Slice `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/expenses-by-category", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching expenses by category: %w", err)
	}
	return result.Categories, nil
}

// Dashboard fetches the series for r together with the category breakdown.
func (c *Client) Dashboard(ctx context.Context, r reports.Range) (*Dashboard, error) {
	var result Dashboard
	path := "/api/v1/reports/dashboard?range=" + url.QueryEscape(string(r))
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching dashboard: %w", err)
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
