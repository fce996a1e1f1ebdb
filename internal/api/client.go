package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"medequip-console/internal/logger"
)

// Client is a typed client for the rental backend's /api surface.
// All methods are one-shot calls; the client keeps no state beyond the
// transport, so it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// errorBody matches the backend's error response shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	logger.BackendCall(method, path, "request_id", req.Header.Get("X-Request-ID"))
	resp, err := c.http.Do(req)
	if err != nil {
		logger.BackendResult(method, path, 0, err)
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()
	logger.BackendResult(method, path, resp.StatusCode, nil)

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		} else {
			apiErr.Message = eb.Error
		}
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, nil, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// upload sends a multipart file as form field "file".
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("reading upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	logger.BackendCall(http.MethodPost, path, "upload", filename)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.BackendResult(http.MethodPost, path, 0, err)
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()
	logger.BackendResult(http.MethodPost, path, resp.StatusCode, nil)

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
