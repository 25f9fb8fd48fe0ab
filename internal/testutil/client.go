// Package testutil provides testing utilities for integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"testing"

	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// Client is an HTTP client for testing API endpoints.
type Client struct {
	BaseURL    string
	Token      string // For API clients using the Authorization header
	CSRFToken  string // CSRF token for cookie-based auth
	HTTPClient *http.Client
}

// NewClient creates a new test client.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Jar: jar},
	}
}

// Register creates an account through the public registration endpoint.
func (c *Client) Register(t *testing.T, email, password, name string) {
	t.Helper()

	resp, err := c.POST("/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("register failed: status=%d body=%s", resp.StatusCode, body)
	}
}

// LoginAs authenticates using email/password. Cookies (access_token,
// refresh_token, csrf_token) land in the cookie jar automatically.
func (c *Client) LoginAs(t *testing.T, email, password string) {
	t.Helper()

	resp, err := c.POST("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed: status=%d body=%s", resp.StatusCode, body)
	}

	// Extract CSRF token from cookies for subsequent requests
	for _, cookie := range resp.Cookies() {
		if cookie.Name == httputil.CSRFTokenCookie {
			c.CSRFToken = cookie.Value
			break
		}
	}
}

// AssignRole sets the signed-in account's role through the onboarding
// endpoint.
func (c *Client) AssignRole(t *testing.T, role string) {
	t.Helper()

	resp, err := c.POST("/api/me/role", map[string]string{"role": role})
	if err != nil {
		t.Fatalf("assign role request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("assign role failed: status=%d body=%s", resp.StatusCode, body)
	}
}

// ClearToken removes the stored token and resets the cookie jar.
func (c *Client) ClearToken() {
	c.Token = ""
	c.CSRFToken = ""
	jar, _ := cookiejar.New(nil)
	c.HTTPClient.Jar = jar
}

// GET performs a GET request.
func (c *Client) GET(path string) (*http.Response, error) {
	return c.do("GET", path, nil)
}

// POST performs a POST request with JSON body.
func (c *Client) POST(path string, body interface{}) (*http.Response, error) {
	return c.do("POST", path, body)
}

// PUT performs a PUT request with JSON body.
func (c *Client) PUT(path string, body interface{}) (*http.Response, error) {
	return c.do("PUT", path, body)
}

// PATCH performs a PATCH request with JSON body.
func (c *Client) PATCH(path string, body interface{}) (*http.Response, error) {
	return c.do("PATCH", path, body)
}

// DELETE performs a DELETE request.
func (c *Client) DELETE(path string) (*http.Response, error) {
	return c.do("DELETE", path, nil)
}

func (c *Client) do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Use Authorization header if Token is set (for API clients)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	// Add CSRF header for state-changing methods when using cookie-based auth
	if c.CSRFToken != "" && isStateChanging(method) {
		req.Header.Set(httputil.CSRFTokenHeader, c.CSRFToken)
	}

	return c.HTTPClient.Do(req)
}

// isStateChanging returns true for HTTP methods that modify state.
func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// DecodeJSON decodes response body into v.
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ReadBody reads and returns response body as string.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
