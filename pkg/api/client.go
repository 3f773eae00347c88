// Package api is the HTTP client for the Guide Me service endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL points at a locally running Guide Me backend.
	DefaultBaseURL = "http://localhost:5000"

	defaultUserAgent = "guideme-cli/1.0"
)

// Client handles interactions with the Guide Me endpoints. The zero timeout
// is deliberate: a chat call waits indefinitely for a reply or a transport
// failure, and the caller decides whether to bound it via context or
// SetTimeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a client for the given base URL. An empty base URL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		UserAgent:  defaultUserAgent,
	}
}

// SetTimeout bounds every request made by the client. Zero restores the
// wait-indefinitely behavior.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Chat sends one user message together with the session id and prior
// history, and normalizes the endpoint's response conventions into a single
// Result. Endpoint-reported failures come back as *RemoteError; anything
// else is a transport failure.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (Result, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	slog.Debug("chat_request",
		"model", req.Model,
		"role", req.Role,
		"session_id", req.SessionID,
		"history_messages", len(req.ChatHistory),
		"request_size", len(jsonData))

	body, err := c.post(ctx, "/api/chat", jsonData)
	if err != nil {
		slog.Error("chat_transport_error", "error", err)
		return Result{}, err
	}

	var wire chatResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		slog.Error("chat_decode_error", "error", err)
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	// The endpoint signals success either with an explicit flag or by the
	// bare presence of a message field.
	if wire.Success || wire.Message != "" {
		text := wire.Response
		if text == "" {
			text = wire.Message
		}
		slog.Debug("chat_response",
			"session_id", wire.SessionID,
			"response_size", len(text))
		return Result{Text: text, SessionID: wire.SessionID}, nil
	}

	msg := wire.Error
	if msg == "" {
		msg = "An error occurred. Please try again."
	}
	slog.Warn("chat_remote_error", "error", msg)
	return Result{}, &RemoteError{Message: msg}
}

// ValidateKey asks the endpoint whether its upstream key is usable. A
// failure reported by the endpoint comes back as *RemoteError carrying the
// human-readable reason.
func (c *Client) ValidateKey(ctx context.Context) error {
	body, err := c.get(ctx, "/api/validate-key")
	if err != nil {
		return err
	}

	var wire validateResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !wire.Success {
		msg := wire.Error
		if msg == "" {
			msg = "API key validation failed"
		}
		return &RemoteError{Message: msg}
	}
	return nil
}

// Models returns the selectable model identifiers with their descriptions.
func (c *Client) Models(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, "/api/models")
	if err != nil {
		return nil, err
	}

	var wire modelsResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !wire.Success {
		return nil, &RemoteError{Message: wire.Error}
	}
	return wire.Models, nil
}

// Roles returns the selectable assistant roles with their descriptions.
func (c *Client) Roles(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, "/api/roles")
	if err != nil {
		return nil, err
	}

	var wire rolesResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !wire.Success {
		return nil, &RemoteError{Message: wire.Error}
	}
	return wire.Roles, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(httpReq)
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq)
}

// do executes the request and returns the raw body. Non-2xx statuses are not
// an error by themselves: the endpoint reports failures in-band with a JSON
// body, so the caller decodes regardless of status.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("api_response",
		"url", req.URL.String(),
		"status_code", resp.StatusCode,
		"response_size", len(body))

	return body, nil
}
