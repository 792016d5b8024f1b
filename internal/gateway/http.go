package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/logging"

	"github.com/google/uuid"
)

// Compile-time interface check.
var _ Gateway = (*HTTPGateway)(nil)

// RequestIDHeader carries a per-call ID so client and server logs can be
// matched up.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed reply is kept for diagnostics.
const maxErrorBody = 512

// HTTPGateway implements Gateway over JSON/HTTP.
type HTTPGateway struct {
	base  string
	http  *http.Client
	newID func() string
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *HTTPGateway) {
		g.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *HTTPGateway) {
		g.http = hc
	}
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(g *HTTPGateway) {
		g.newID = fn
	}
}

// NewHTTPGateway creates a gateway for the API rooted at baseURL.
func NewHTTPGateway(baseURL string, opts ...Option) (*HTTPGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.NewInvalidInputError("base_url", baseURL, "must be an absolute URL")
	}
	g := &HTTPGateway{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// BaseURL returns the API root without a trailing slash.
func (g *HTTPGateway) BaseURL() string {
	return g.base
}

// ListUsers implements Gateway.
func (g *HTTPGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := g.do(ctx, "list users", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// CreateUser implements Gateway.
func (g *HTTPGateway) CreateUser(ctx context.Context, u NewUser) (*domain.User, error) {
	var created domain.User
	if err := g.do(ctx, "create user", http.MethodPost, "/users", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser implements Gateway.
func (g *HTTPGateway) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.ID <= 0 {
		return nil, apperrors.NewInvalidInputError("id", u.ID, "user has no identifier")
	}
	if u.Tasks == nil {
		u.Tasks = []domain.Task{}
	}
	var updated domain.User
	if err := g.do(ctx, "update user", http.MethodPut, userPath(u.ID), u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser implements Gateway.
func (g *HTTPGateway) DeleteUser(ctx context.Context, id int64) error {
	return g.do(ctx, "delete user", http.MethodDelete, userPath(id), nil, nil)
}

// CreateTask implements Gateway.
func (g *HTTPGateway) CreateTask(ctx context.Context, t NewTask) (*domain.Task, error) {
	if t.UserID <= 0 {
		return nil, apperrors.NewInvalidInputError("userId", t.UserID, "task has no owner")
	}
	var created domain.Task
	if err := g.do(ctx, "create task", http.MethodPost, "/tasks", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask implements Gateway.
func (g *HTTPGateway) UpdateTask(ctx context.Context, t domain.Task) (*domain.Task, error) {
	if t.ID <= 0 {
		return nil, apperrors.NewInvalidInputError("id", t.ID, "task has no identifier")
	}
	var updated domain.Task
	if err := g.do(ctx, "update task", http.MethodPut, taskPath(t.ID), t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask implements Gateway.
func (g *HTTPGateway) DeleteTask(ctx context.Context, id int64) error {
	return g.do(ctx, "delete task", http.MethodDelete, taskPath(id), nil, nil)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// do sends one JSON request and decodes the reply into out when out is
// non-nil and the reply has a body.
func (g *HTTPGateway) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("gateway: %s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return fmt.Errorf("gateway: %s: create request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := g.newID()
	req.Header.Set(RequestIDHeader, requestID)

	logging.Debugf("gateway: %s %s [%s]\n", method, path, requestID)
	resp, err := g.http.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return apperrors.NewTimeoutError(op, g.http.Timeout).WithContext("cause", err.Error())
		}
		return apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()
	logging.Debugf("gateway: %s %s [%s] -> %d\n", method, path, requestID, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Op:         op,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			RequestID:  requestID,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("gateway: %s: decode response: %w", op, err)
	}
	return nil
}

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Body       string
	RequestID  string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("gateway: %s: %s %s: HTTP %d: %s", e.Op, e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gateway: %s: %s %s: HTTP %d", e.Op, e.Method, e.Path, e.StatusCode)
}

// Unwrap classifies the reply as an application error so callers can use
// the errors package helpers.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return apperrors.NewNotFoundError(resourceOf(e.Path), e.Path)
	}
	return apperrors.NewRemoteError(e.Op, e.StatusCode, nil)
}

func resourceOf(path string) string {
	switch {
	case strings.HasPrefix(path, "/users"):
		return "user"
	case strings.HasPrefix(path, "/tasks"):
		return "task"
	default:
		return "resource"
	}
}

// IsNotFound reports whether err is a 404 reply.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
