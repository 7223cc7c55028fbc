package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/JeffMenca/pitstop-manager/internal/model"
	"github.com/JeffMenca/pitstop-manager/internal/session"
	"github.com/JeffMenca/pitstop-manager/pkg/apierror"
)

var bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)

// Client is the single path to the backend. Every request gets the bearer
// token attached, every response is inspected for a rotated token, and a 401
// invalidates the whole session regardless of which call produced it.
type Client struct {
	base    string
	httpc   *http.Client
	session *session.Store
}

func New(baseURL string, timeout time.Duration, store *session.Store) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout: timeout,
			// The login protocol uses 301/302 as stage signals, not as
			// redirects to follow.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		session: store,
	}
}

// Send performs a request and returns the raw response with the body still
// open. The bearer token is attached and a rotated token is persisted even
// on error statuses, but no status normalization happens; the login flows
// need the raw 200/301/302 distinction. Callers own closing the body.
func (c *Client) Send(ctx context.Context, method string, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := c.session.Token(); ok && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apierror.New("TRANSPORT", "backend unreachable", err.Error(), 0)
	}

	// Rotation is persisted unconditionally: losing a rotated token because
	// the call's business outcome failed would strand the session.
	if rotated := RotatedToken(resp); rotated != "" {
		c.session.SetToken(rotated)
	}

	return resp, nil
}

// Do performs a request with normalized outcomes: 401 invalidates the
// session and surfaces a typed Unauthorized failure, other non-2xx statuses
// surface the server's message (or "HTTP <status>"), and a 2xx JSON body is
// decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	resp, err := c.Send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.ClearAuth()
		return apierror.Unauthorized(ServerMessage(resp))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.FromStatus(resp.StatusCode, ServerMessage(resp))
	}

	if out == nil || !hasJSONBody(resp) {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierror.New("TRANSPORT", "malformed response body", err.Error(), resp.StatusCode)
	}

	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// RotatedToken extracts a replacement bearer token from the response
// headers. The backend uses Authorization or X-Auth-Token, with or without
// the Bearer prefix.
func RotatedToken(resp *http.Response) string {
	raw := resp.Header.Get("Authorization")
	if raw == "" {
		raw = resp.Header.Get("X-Auth-Token")
	}
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(bearerPrefix.ReplaceAllString(raw, ""))
}

// ServerMessage pulls the backend's `{ message }` out of a JSON error body.
// Empty when the body is absent, not JSON, or unparseable.
func ServerMessage(resp *http.Response) string {
	if !hasJSONBody(resp) {
		return ""
	}

	var parsed model.BackendError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return ""
	}
	return parsed.Message
}

func hasJSONBody(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}
