// Package client talks to a running calboard server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:3000"

type Log struct {
	Date     string  `json:"date"`
	Calories int64   `json:"calories"`
	Proof    *string `json:"proof"`
}

type User struct {
	Name          string `json:"name"`
	TotalCalories int64  `json:"totalCalories"`
	Logs          []Log  `json:"logs"`
}

// State is the board as returned by GET /api/data.
type State struct {
	Users     []User `json:"users"`
	LastReset int64  `json:"lastReset"`
}

// LastResetTime converts the epoch millisecond marker to a time.Time.
func (s State) LastResetTime() time.Time {
	return time.UnixMilli(s.LastReset)
}

type Entry struct {
	Name     string  `json:"name"`
	Calories int64   `json:"calories"`
	Proof    *string `json:"proof,omitempty"`
	Date     string  `json:"date,omitempty"`
}

type EntryResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ResetResult struct {
	Message   string `json:"message"`
	LastReset int64  `json:"lastReset"`
}

type Health struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Entries       int64  `json:"entries"`
	Resets        int64  `json:"resets"`
	Goroutines    int    `json:"goroutines"`
}

// APIError is returned for any non-2xx response. Message holds the server's
// "error" text when the body carried one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("calboard: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("calboard: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

func (c *Client) FetchState(ctx context.Context) (State, error) {
	var out State
	if err := c.do(ctx, http.MethodGet, "/api/data", nil, &out); err != nil {
		return State{}, err
	}
	if out.Users == nil {
		out.Users = []User{}
	}
	return out, nil
}

func (c *Client) AddEntry(ctx context.Context, e Entry) (EntryResult, error) {
	var out EntryResult
	err := c.do(ctx, http.MethodPost, "/api/entry", e, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context) (ResetResult, error) {
	var out ResetResult
	err := c.do(ctx, http.MethodPost, "/api/reset", nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &out)
	return out, err
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Error
			apiErr.Code = envelope.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
