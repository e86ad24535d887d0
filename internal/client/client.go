// Package client talks to the application registry over its REST surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// APIError is a non-2xx answer from the registry.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry returned %d", e.StatusCode)
	}
	return e.Message
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) Create(ctx context.Context, req dtos.CreateApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/api/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/api/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) ListByEmail(ctx context.Context, email string) ([]models.Application, error) {
	var apps []models.Application
	path := "/api/applications/by-email?" + url.Values{"email": {email}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) Get(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodGet, applicationPath(id), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) Update(ctx context.Context, id uint, req dtos.UpdateApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPut, applicationPath(id), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, applicationPath(id), nil, nil)
}

// Hello returns nil when the registry has no greeting row.
func (c *Client) Hello(ctx context.Context) (*models.HelloWorld, error) {
	var hello *models.HelloWorld
	if err := c.do(ctx, http.MethodGet, "/api/hello", nil, &hello); err != nil {
		return nil, err
	}
	return hello, nil
}

func (c *Client) Health(ctx context.Context) (*dtos.HealthResponse, error) {
	var health dtos.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func applicationPath(id uint) string {
	return "/api/applications/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func apiError(status int, payload []byte) error {
	var parsed dtos.ErrorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil && parsed.Message != "" {
		return &APIError{StatusCode: status, Message: parsed.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(payload))}
}
