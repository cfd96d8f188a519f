// Package api is the HTTP client for the DocMe letters backend. Every
// call is a single request/response; retries are left to the user
// action that triggered the call.
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
	"strconv"
	"strings"
	"time"

	"docme/internal/app"
)

// ErrUnauthorized is returned for 401 responses. The stored token is
// never refreshed; expiry shows up here on the next request.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError carries the HTTP status and the backend's message field
// when the response body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	token   func() string
	log     *app.Logger
	now     func() time.Time
}

// NewClient builds a client for the given base URL. token is consulted
// per request so a sign-in mid-session is picked up without rebuilding
// the client.
func NewClient(baseURL string, token func() string, log *app.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		token:   token,
		log:     log,
		now:     time.Now,
	}
}

// GetLetter loads one document by backend id.
func (c *Client) GetLetter(ctx context.Context, id string) (*Letter, error) {
	var out Letter
	if err := c.do(ctx, http.MethodGet, "/letters/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, nil
}

// ListLetters fetches every document for the authenticated user.
func (c *Client) ListLetters(ctx context.Context) ([]Letter, error) {
	var out []Letter
	if err := c.do(ctx, http.MethodGet, "/letters/all", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveLetter creates a new document.
func (c *Client) SaveLetter(ctx context.Context, title, content string) (*SaveResult, error) {
	body := map[string]string{"title": title, "content": content}
	var out SaveResult
	if err := c.do(ctx, http.MethodPost, "/letters/save", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLetter overwrites the title and content of an existing document.
func (c *Client) UpdateLetter(ctx context.Context, id, title, content string) (*SaveResult, error) {
	body := map[string]string{"title": title, "content": content}
	var out SaveResult
	if err := c.do(ctx, http.MethodPut, "/letters/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLetter removes a document server-side.
func (c *Client) DeleteLetter(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/letters/"+url.PathEscape(id), nil, nil, nil)
}

// AddCollaborator shares a document with an email address.
func (c *Client) AddCollaborator(ctx context.Context, letterID, email string) error {
	body := map[string]string{"letterId": letterID, "collaboratorEmail": email}
	return c.do(ctx, http.MethodPost, "/letters/add-collaborator", nil, body, nil)
}

// ListCollaborators fetches the email addresses a document is shared with.
func (c *Client) ListCollaborators(ctx context.Context, letterID string) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/letters/"+url.PathEscape(letterID)+"/collaborators", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DriveRoot lists the top level of the user's Drive.
func (c *Client) DriveRoot(ctx context.Context) ([]DriveFile, error) {
	var out []DriveFile
	if err := c.do(ctx, http.MethodGet, "/letters/drive-files", c.cacheBuster(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DriveFolder lists the direct children of one Drive folder.
func (c *Client) DriveFolder(ctx context.Context, folderID string) ([]DriveFile, error) {
	var out []DriveFile
	if err := c.do(ctx, http.MethodGet, "/letters/drive-files/"+url.PathEscape(folderID), c.cacheBuster(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthURL asks the backend for the Google consent URL used to grant
// Drive access. This is the one unauthenticated endpoint.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/google/url", nil, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// LoginURL is the browser entry point for the backend's OAuth flow.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/google"
}

// cacheBuster defeats intermediate HTTP caches on Drive listings so
// opening a folder always shows fresh data.
func (c *Client) cacheBuster() url.Values {
	return url.Values{"_t": []string{strconv.FormatInt(c.now().UnixMilli(), 10)}}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("request failed", map[string]interface{}{"method": method, "path": path, "error": err.Error()})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		msg := serverMessage(data)
		c.log.Error("request rejected", map[string]interface{}{"method": method, "path": path, "status": resp.StatusCode, "message": msg})
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func serverMessage(data []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(data))
}
