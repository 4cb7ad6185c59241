package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"forumhub/pkg/logger"
	"forumhub/pkg/models"
)

// Client handles HTTP API communication
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	clientID   string
	limiter    *rate.Limiter
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID: uuid.NewString(),
		// Outbound politeness limit: bursts are fine, sustained hammering
		// of the backend is not.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current authentication token
func (c *Client) Token() string {
	return c.token
}

// ClearToken drops the authentication token
func (c *Client) ClearToken() {
	c.token = ""
}

// requireAuth guards operations that need a session. It fails before any
// network traffic happens.
func (c *Client) requireAuth() error {
	if c.token == "" {
		return models.NewAuthRequiredError()
	}
	return nil
}

// doRequest performs a JSON HTTP request with common handling
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, method, path)
}

// doMultipart performs a multipart/form-data POST or PUT. Field order is
// fields first, then file parts under the given part name.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, partName string, files []models.AttachmentUpload) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(partName, f.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, method, path)
}

// send applies shared headers, rate limiting, and error mapping.
func (c *Client) send(req *http.Request, method, path string) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Client-ID", c.clientID)

	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, models.NewNetworkError(err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewNetworkError(err)
	}
	logger.HTTP(method, path, resp.StatusCode, int(time.Since(start).Milliseconds()))

	return resp, nil
}

// decodeResponse decodes JSON response into target
func decodeResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return models.NewServerError(resp.StatusCode, string(bytes.TrimSpace(body)))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// drainResponse consumes a response where only the status matters.
func drainResponse(resp *http.Response) error {
	return decodeResponse(resp, nil)
}
