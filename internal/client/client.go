// Package client talks to the task API over HTTP/JSON.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/opsboard/internal/dto"
	apierrors "github.com/yukikurage/opsboard/internal/errors"
	"github.com/yukikurage/opsboard/internal/models"
)

const defaultTimeout = 15 * time.Second

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	APIError   *apierrors.APIError
}

func (e *StatusError) Error() string {
	if e.APIError != nil && e.APIError.Message != "" {
		return fmt.Sprintf("%s (%d %s)", e.APIError.Message, e.StatusCode, e.APIError.Code)
	}
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client wraps http.Client with the task API routes. The session cookie set
// by Login is kept in the client's jar.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Jar: jar, Timeout: defaultTimeout},
	}
}

// Login opens an owner session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: password}, nil)
}

// Logout ends the owner session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var resp dto.TaskListResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) ReorderTasks(ctx context.Context, items []dto.ReorderItem) error {
	return c.do(ctx, http.MethodPut, "/api/tasks/reorder", dto.ReorderRequest{Items: items}, nil)
}

func taskPath(id uint64) string {
	return "/api/tasks/" + strconv.FormatUint(id, 10)
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil. Other statuses become a *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr apierrors.APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
			statusErr.APIError = &apiErr
		}
		return statusErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
