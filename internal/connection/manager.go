package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"escli/pkg/logging"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// DefaultCheckTimeout bounds the connectivity check against the cluster root.
	DefaultCheckTimeout = 5 * time.Second
	// DefaultRequestTimeout bounds every other request.
	DefaultRequestTimeout = 30 * time.Second

	// OpaqueIDHeader tags requests so they can be traced in the cluster task list.
	OpaqueIDHeader = "X-Opaque-Id"

	subsystem = "Connection"
)

// Credentials is a basic-auth username and password pair.
type Credentials struct {
	Username string
	Password string
}

// Options configures a Manager.
type Options struct {
	// CheckTimeout bounds CheckConnection. Zero means DefaultCheckTimeout.
	CheckTimeout time.Duration
	// RequestTimeout bounds Do. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// Transport replaces the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Manager owns the single active cluster endpoint and its credentials.
//
// A Manager starts disconnected. SetConnection points it at a cluster without
// any network I/O; CheckConnection and Do talk to the cluster. Requests are
// never retried.
type Manager struct {
	mu             sync.RWMutex
	client         *resty.Client
	url            string
	creds          *Credentials
	checkTimeout   time.Duration
	requestTimeout time.Duration
}

// NewManager creates a disconnected Manager.
func NewManager(opts Options) *Manager {
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = DefaultCheckTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "escli"
	}

	client := resty.New()
	client.SetLogger(logging.RestyLogger{Subsystem: subsystem})
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}

	client.
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", opts.UserAgent)

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		req.SetHeader(OpaqueIDHeader, "escli-"+uuid.NewString())
		logging.Debug(subsystem, "Request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug(subsystem, "Response: %d %s %s (took %v)",
			resp.StatusCode(), resp.Request.Method, resp.Request.URL, resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug(subsystem, "Request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Manager{
		client:         client,
		checkTimeout:   opts.CheckTimeout,
		requestTimeout: opts.RequestTimeout,
	}
}

// SetConnection replaces the active endpoint and credentials. Credentials are kept
// only when both username and password are non-empty. No request is made.
func (m *Manager) SetConnection(url, username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.url = strings.TrimRight(strings.TrimSpace(url), "/")
	m.creds = nil
	if username != "" && password != "" {
		m.creds = &Credentials{Username: username, Password: password}
	}
	logging.Debug(subsystem, "Connection set to %s (auth: %t)", m.url, m.creds != nil)
}

// ClearConnection resets the endpoint and credentials. It is idempotent.
func (m *Manager) ClearConnection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.url = ""
	m.creds = nil
}

// URL returns the active endpoint, or an empty string when disconnected.
func (m *Manager) URL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.url
}

// Credentials returns a copy of the active credentials, or nil for anonymous access.
func (m *Manager) Credentials() *Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.creds == nil {
		return nil
	}
	c := *m.creds
	return &c
}

// Connected reports whether an endpoint is set. It does not contact the cluster.
func (m *Manager) Connected() bool {
	return m.URL() != ""
}

// snapshot reads the endpoint state under the lock.
func (m *Manager) snapshot() (string, *Credentials) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.url, m.creds
}

func (m *Manager) newRequest(ctx context.Context, creds *Credentials) *resty.Request {
	req := m.client.R().SetContext(ctx)
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}
	return req
}

// CheckConnection verifies the active endpoint answers GET / with HTTP 200
// within the check timeout.
func (m *Manager) CheckConnection(ctx context.Context) error {
	baseURL, creds := m.snapshot()
	if baseURL == "" {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, m.checkTimeout)
	defer cancel()

	target := baseURL + "/"
	resp, err := m.newRequest(ctx, creds).Get(target)
	if err != nil {
		return ClassifyConnectionError(err, baseURL)
	}

	if resp.StatusCode() != http.StatusOK {
		return &ConnectionError{
			URL:  baseURL,
			Type: ConnectionErrorStatus,
			Reason: &StatusError{
				Method:     http.MethodGet,
				URL:        target,
				StatusCode: resp.StatusCode(),
				Body:       resp.String(),
			},
		}
	}

	return nil
}

// Do checks connectivity and then sends method to path on the active endpoint.
// A non-nil body is sent as JSON. path must start with "/".
//
// The connectivity check runs first and its error is returned without issuing
// the request. A 200 or 201 response yields a Result; an empty body yields a
// Result whose Empty method reports true. Any other status yields *StatusError.
func (m *Manager) Do(ctx context.Context, method, path string, body interface{}) (*Result, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, &RequestError{Reason: fmt.Sprintf("unsupported method %q", method)}
	}
	if !strings.HasPrefix(path, "/") {
		return nil, &RequestError{Reason: fmt.Sprintf("path %q must start with /", path)}
	}

	if err := m.CheckConnection(ctx); err != nil {
		return nil, err
	}

	baseURL, creds := m.snapshot()
	target := baseURL + path

	ctx, cancel := context.WithTimeout(ctx, m.requestTimeout)
	defer cancel()

	req := m.newRequest(ctx, creds)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, ClassifyConnectionError(err, baseURL)
	}

	return newResult(method, target, resp.StatusCode(), resp.Body())
}

func newResult(method, target string, status int, body []byte) (*Result, error) {
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: status,
			Body:       string(body),
		}
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return &Result{StatusCode: status, URL: target}, nil
	}

	if !json.Valid([]byte(trimmed)) {
		return nil, &DecodeError{URL: target, Err: fmt.Errorf("response is not valid JSON")}
	}

	return &Result{StatusCode: status, URL: target, Body: json.RawMessage(trimmed)}, nil
}
