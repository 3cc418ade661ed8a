// Package api is the HTTP client for the TrackUp backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trackup/internal/model"
)

const DefaultTimeout = 60 * time.Second

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client rooted at baseURL. A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

func (c *Client) Chat(ctx context.Context, query, userID string) (string, error) {
	var out model.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", model.ChatRequest{Query: query, UserID: userID}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) Teams(ctx context.Context) (model.Roster, error) {
	var out model.Roster
	if err := c.do(ctx, http.MethodGet, "/api/teams", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = model.Roster{}
	}
	return out, nil
}

func (c *Client) Member(ctx context.Context, name string) (model.MemberDetail, error) {
	var out model.MemberDetail
	if err := c.do(ctx, http.MethodGet, "/api/member/"+url.PathEscape(name), nil, &out); err != nil {
		return model.MemberDetail{}, err
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteTeam(ctx context.Context, team string) error {
	return c.do(ctx, http.MethodDelete, "/api/teams/"+url.PathEscape(team), nil, nil)
}

func (c *Client) RemoveMember(ctx context.Context, team, member string) error {
	return c.do(ctx, http.MethodDelete, "/api/teams/"+url.PathEscape(team)+"/members/"+url.PathEscape(member), nil, nil)
}

// do issues one request. A nil out discards the response body (deletes only
// need a 2xx).
func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: compactSingleLine(string(payload), 240)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

func compactSingleLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); max > 0 && len(r) > max {
		return string(r[:max]) + "…"
	}
	return s
}
