package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/models"
)

// envelope is the platform's uniform response wrapper: exactly one of Result
// or Error is populated depending on the HTTP status.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// HTTPClient talks JSON over HTTP(S) to a LesVieux deployment.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	log     logging.Logger

	// onUnauthorized fires whenever an authenticated call comes back 401,
	// regardless of which operation it was. The session layer uses it to
	// drop the token exactly once per stale credential.
	onUnauthorized func()
}

type noToken struct{}

func (noToken) Token() string { return "" }

// NewHTTPClient builds a client for the API at baseURL. The timeout applies
// per request, on top of whatever deadline the caller's context carries.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  noToken{},
		log:     log,
	}
}

// SetTokenProvider wires the credential source. Call before issuing
// authenticated requests.
func (c *HTTPClient) SetTokenProvider(tp TokenProvider) {
	c.tokens = tp
}

// SetOnUnauthorized registers the global 401 hook.
func (c *HTTPClient) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do performs one request/response cycle. When authed is true the bearer
// token is attached. A non-2xx response is returned as *Error with the
// server's "error" field; out, when non-nil, receives the unwrapped "result".
func (c *HTTPClient) do(ctx context.Context, method, path string, authed bool, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env) // body may be empty or non-JSON
		c.log.Debug(ctx, "api error", "method", method, "path", path,
			"status", resp.StatusCode, "request_id", requestID)
		if resp.StatusCode == http.StatusUnauthorized && authed && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decoding result: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Status(ctx context.Context) (*models.StatusInfo, error) {
	var info models.StatusInfo
	if err := c.do(ctx, http.MethodGet, "/status", false, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/login", false, body, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/me", true, nil, nil)
}

func (c *HTTPClient) CreatePost(ctx context.Context) (int64, error) {
	// The server allocates the id and an empty draft in one call; there is no
	// client-side placeholder post before this returns.
	body := map[string]string{"status": string(models.StatusDraft)}
	var result struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/me/posts", true, body, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, scope Scope, id int64) (*models.Post, error) {
	base, err := postsPath(scope)
	if err != nil {
		return nil, err
	}
	var post models.Post
	authed := scope != ScopePublished
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", base, id), authed, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) ListPostIDs(ctx context.Context, scope Scope) ([]int64, error) {
	base, err := postsPath(scope)
	if err != nil {
		return nil, err
	}
	var ids []int64
	authed := scope != ScopePublished
	if err := c.do(ctx, http.MethodGet, base, authed, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *HTTPClient) UpdateMyPost(ctx context.Context, id int64, title, content string, status models.PostStatus) error {
	body := map[string]string{"title": title, "content": content, "status": string(status)}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/me/posts/%d", id), true, body, nil)
}

func (c *HTTPClient) DeletePost(ctx context.Context, scope Scope, id int64) error {
	path, err := deletePath(scope, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, true, nil, nil)
}

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]models.AccountEntry, error) {
	var accounts []models.AccountEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/accounts", true, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, username, password string) (int64, error) {
	return c.createAccount(ctx, username, password, true)
}

func (c *HTTPClient) CreateFirstAccount(ctx context.Context, username, password string) (int64, error) {
	return c.createAccount(ctx, username, password, false)
}

func (c *HTTPClient) createAccount(ctx context.Context, username, password string, authed bool) (int64, error) {
	body := map[string]string{"username": username, "password": password}
	var result struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/accounts", authed, body, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", id), true, nil, nil)
}

func (c *HTTPClient) ChangeMyPassword(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/me/change_password", true, body, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, id int64, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/accounts/%d/change_password", id), true, body, nil)
}
