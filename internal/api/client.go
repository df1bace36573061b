// Package api provides a client for the task board REST backend.
// The backend exposes /tasks, /users and /categories as JSON resources.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:3000"
	// DefaultTimeout bounds every request unless configured otherwise.
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "taskboard-cli"
	maxErrorBody     = 512
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend URL (e.g., "http://localhost:3000")
	BaseURL string

	// Timeout for HTTP requests (default: 10s)
	Timeout time.Duration

	// UserAgent sent with every request (default: taskboard-cli)
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the task backend. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, userAgent: userAgent, client: httpClient}, nil
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches every task.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, id models.ID) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, "get task", http.MethodGet, taskPath(id), nil, &task)
	return task, err
}

// CreateTask posts a new task and returns the stored representation.
func (c *Client) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var created models.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", task, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// UpdateTask sends a partial update. The response is decoded as a patch so
// fields the server leaves out stay absent.
func (c *Client) UpdateTask(ctx context.Context, id models.ID, patch models.TaskPatch) (models.TaskPatch, error) {
	var updated models.TaskPatch
	if err := c.do(ctx, "update task", http.MethodPut, taskPath(id), patch, &updated); err != nil {
		return models.TaskPatch{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id models.ID) error {
	return c.do(ctx, "delete task", http.MethodDelete, taskPath(id), nil, nil)
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, "list users", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, "list categories", http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func taskPath(id models.ID) string {
	return "/tasks/" + url.PathEscape(id.String())
}

// do performs one request. A nil in skips the body, a nil out discards the
// response. Every failure is a *types.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	endpoint := c.baseURL + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &types.RemoteError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &types.RemoteError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("api request failed", "op", op, "method", method, "url", endpoint, "request_id", requestID, "error", err)
		return &types.RemoteError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("HTTP request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("api request", "op", op, "method", method, "url", endpoint,
		"status", resp.StatusCode, "request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return types.NewRemoteError(op, method, endpoint, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		return &types.RemoteError{Op: op, Method: method, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
