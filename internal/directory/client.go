// Package directory provides a client for the hosted identity directory's
// REST API. The directory owns recruiter/admin account records and the
// privileged user-management operations the admin surface proxies to.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/pkg/metrics"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.clerk.com/v1"
	defaultTimeout = 10 * time.Second

	// listPageSize is the page size used when walking the user list.
	listPageSize = 100
)

// Directory errors.
var (
	ErrUserNotFound  = errors.New("directory user not found")
	ErrNotConfigured = errors.New("directory client is not configured")
)

// APIError is a non-2xx directory response that is not a simple not-found.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("directory error %d: %s", e.Status, e.Message)
}

// Config holds directory client configuration.
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
	RateLimit float64 // requests per second; 0 disables client-side limiting
}

// Client talks to the directory REST API. A client constructed without a
// secret key is inert: every call returns ErrNotConfigured.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new directory client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), int(config.RateLimit)+1)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: limiter,
	}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c.config.SecretKey != ""
}

// directoryUser is the subset of the directory's user payload this service
// reads. Everything else in the payload is opaque.
type directoryUser struct {
	ID                    string `json:"id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Banned                bool   `json:"banned"`
	PrimaryEmailAddressID string `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

func (u directoryUser) toDomain() domain.DirectoryUser {
	d := domain.DirectoryUser{
		ID:     u.ID,
		Name:   strings.TrimSpace(u.FirstName + " " + u.LastName),
		Banned: u.Banned,
	}
	for _, e := range u.EmailAddresses {
		if d.Email == "" || e.ID == u.PrimaryEmailAddressID {
			d.Email = e.EmailAddress
		}
	}
	return d
}

// ListUsers returns all directory users, walking pagination.
func (c *Client) ListUsers(ctx context.Context) ([]domain.DirectoryUser, error) {
	users := make([]domain.DirectoryUser, 0)

	for offset := 0; ; offset += listPageSize {
		var page []directoryUser
		path := fmt.Sprintf("/users?limit=%d&offset=%d", listPageSize, offset)
		if err := c.do(ctx, "list_users", http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		for _, u := range page {
			users = append(users, u.toDomain())
		}

		if len(page) < listPageSize {
			return users, nil
		}
	}
}

// GetUser fetches a single directory user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.DirectoryUser, error) {
	var u directoryUser
	if err := c.do(ctx, "get_user", http.MethodGet, "/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	d := u.toDomain()
	return &d, nil
}

// DeleteUser removes a user from the directory.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "delete_user", http.MethodDelete, "/users/"+id, nil, nil)
}

// BanUser blocks a user's platform access.
func (c *Client) BanUser(ctx context.Context, id string) error {
	return c.do(ctx, "ban_user", http.MethodPost, "/users/"+id+"/ban", nil, nil)
}

// UnbanUser restores a user's platform access.
func (c *Client) UnbanUser(ctx context.Context, id string) error {
	return c.do(ctx, "unban_user", http.MethodPost, "/users/"+id+"/unban", nil, nil)
}

// UpdateRole writes the role attribute onto the hosted profile so the
// directory's copy stays consistent with the local one.
func (c *Client) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	body := map[string]interface{}{
		"unsafe_metadata": map[string]string{"role": string(role)},
	}
	return c.do(ctx, "update_role", http.MethodPatch, "/users/"+id+"/metadata", body, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordDirectoryLookup(operation, "error", time.Since(start))
		return fmt.Errorf("directory request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		metrics.RecordDirectoryLookup(operation, "not_found", time.Since(start))
		return ErrUserNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordDirectoryLookup(operation, "error", time.Since(start))
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	metrics.RecordDirectoryLookup(operation, "ok", time.Since(start))

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
