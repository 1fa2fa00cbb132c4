package maestro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nao1215/rollcall/internal/model"
)

const (
	loginPath = "/api/v2/workspace/login"
	alertPath = "/api/v2/alerts"
	errorPath = "/api/v2/error"

	// maxErrorBody bounds how much of a failed response ends up in APIError.
	maxErrorBody = 512
)

// HTTPClient is a Client for the orchestrator's REST API.
type HTTPClient struct {
	server     string
	login      string
	key        string
	taskID     string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	token string
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient creates a client for the server in cfg.
// The login request is deferred until the first API call.
func NewHTTPClient(cfg Config, opts ...HTTPOption) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(cfg.Server); err != nil {
		return nil, fmt.Errorf("invalid maestro server URL %q: %w", cfg.Server, err)
	}

	c := &HTTPClient{
		server:     strings.TrimRight(cfg.Server, "/"),
		login:      cfg.Login,
		key:        cfg.Key,
		taskID:     cfg.TaskID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login exchanges the workspace login and key for an access token.
func (c *HTTPClient) Login(ctx context.Context) error {
	body := map[string]string{"login": c.login, "key": c.key}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.send(ctx, http.MethodPost, loginPath, "", body, &resp); err != nil {
		return fmt.Errorf("maestro login failed: %w", err)
	}
	if resp.AccessToken == "" {
		return ErrEmptyToken
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.mu.Unlock()

	c.logger.Debug("logged in to maestro", "server", c.server, "login", c.login)
	return nil
}

// Execution fetches the task and its parameters.
func (c *HTTPClient) Execution(ctx context.Context) (*Execution, error) {
	var resp struct {
		Parameters map[string]any `json:"parameters"`
	}
	if err := c.call(ctx, http.MethodGet, taskPath(c.taskID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch task %s: %w", c.taskID, err)
	}
	if resp.Parameters == nil {
		resp.Parameters = make(map[string]any)
	}
	return &Execution{TaskID: c.taskID, Parameters: resp.Parameters}, nil
}

// Alert raises an alert on the task.
func (c *HTTPClient) Alert(ctx context.Context, taskID, title, message string, alertType model.AlertType) error {
	body := struct {
		TaskID  string          `json:"taskId"`
		Title   string          `json:"title"`
		Message string          `json:"message"`
		Type    model.AlertType `json:"type"`
	}{taskID, title, message, alertType}

	if err := c.call(ctx, http.MethodPost, alertPath, body, nil); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// Error reports err on the task and uploads the attachments to the new error entry.
func (c *HTTPClient) Error(ctx context.Context, taskID string, err error, attachments []string) error {
	body := struct {
		TaskID     string `json:"taskId"`
		Type       string `json:"type"`
		Message    string `json:"message"`
		Language   string `json:"language"`
		StackTrace string `json:"stackTrace"`
	}{
		TaskID:     taskID,
		Type:       fmt.Sprintf("%T", err),
		Message:    errorMessage(err),
		Language:   "GO",
		StackTrace: errorMessage(err),
	}

	var resp struct {
		ID flexibleID `json:"id"`
	}
	if callErr := c.call(ctx, http.MethodPost, errorPath, body, &resp); callErr != nil {
		return fmt.Errorf("failed to create error entry: %w", callErr)
	}

	for _, path := range attachments {
		if upErr := c.upload(ctx, fmt.Sprintf("%s/%s/file", errorPath, resp.ID), path); upErr != nil {
			return fmt.Errorf("failed to attach %s to error %s: %w", path, resp.ID, upErr)
		}
	}
	return nil
}

// FinishTask closes the task with the given status.
func (c *HTTPClient) FinishTask(ctx context.Context, taskID string, status model.FinishStatus, message string) error {
	body := struct {
		State         string             `json:"state"`
		FinishStatus  model.FinishStatus `json:"finishStatus"`
		FinishMessage string             `json:"finishMessage"`
	}{"FINISHED", status, message}

	if err := c.call(ctx, http.MethodPost, taskPath(taskID), body, nil); err != nil {
		return fmt.Errorf("failed to finish task %s: %w", taskID, err)
	}
	return nil
}

// call sends an authenticated JSON request, logging in first when needed.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, token, in, out)
}

// accessToken returns the cached token, logging in on first use.
func (c *HTTPClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	if err := c.Login(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, nil
}

// send performs one JSON request. A nil in sends no body; a nil out
// discards the response body.
func (c *HTTPClient) send(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req, token)

	return c.do(req, out)
}

// upload posts the file at path as a multipart form field named "file".
func (c *HTTPClient) upload(ctx context.Context, path, file string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(file) //nolint:gosec // Attachment paths are chosen by the robot
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(file))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req, token)

	return c.do(req, nil)
}

func (c *HTTPClient) authorize(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("token", token)
	req.Header.Set("organization", c.login)
}

// do executes req and decodes a JSON response into out.
func (c *HTTPClient) do(req *http.Request, out any) error {
	c.logger.Debug("maestro request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func taskPath(taskID string) string {
	return "/api/v2/task/" + url.PathEscape(taskID)
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// flexibleID accepts identifiers encoded either as JSON strings or numbers.
type flexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = flexibleID(n.String())
	return nil
}

// String returns the identifier.
func (id flexibleID) String() string {
	return string(id)
}
