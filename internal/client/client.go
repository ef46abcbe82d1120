package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/robotteam/clubserver/types"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Session is the answer of GET /api/session.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	IsAdmin       bool   `json:"isAdmin"`
}

// Client talks to the club API. The session cookie lives in its cookie jar,
// so each Client is one session.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: defaultTimeout},
	}, nil
}

// Login opens a session. The returned Session reflects the login answer.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var resp struct {
		Success  bool   `json:"success"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", payload, &resp); err != nil {
		return Session{}, err
	}
	return Session{Authenticated: resp.Success, Username: resp.Username, IsAdmin: resp.IsAdmin}, nil
}

func (c *Client) Session(ctx context.Context) (Session, error) {
	var session Session
	err := c.do(ctx, http.MethodGet, "/api/session", nil, &session)
	return session, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// ListMessages returns pending broadcast messages, newest first.
func (c *Client) ListMessages(ctx context.Context) ([]types.AdminMessage, error) {
	var messages []types.AdminMessage
	err := c.do(ctx, http.MethodGet, "/api/admin-messages", nil, &messages)
	return messages, err
}

func (c *Client) PostMessage(ctx context.Context, message string) (types.AdminMessage, error) {
	var resp struct {
		Data types.AdminMessage `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin-messages", map[string]string{"message": message}, &resp)
	return resp.Data, err
}

// DeleteMessage consumes a broadcast message.
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin-messages/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope types.Response
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
