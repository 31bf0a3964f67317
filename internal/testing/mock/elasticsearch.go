package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Request is a request received by the fake cluster.
type Request struct {
	Method string
	Path   string
	// EscapedPath is the path as sent on the wire.
	EscapedPath string
	RawQuery    string
	Body        string
	Username    string
	Password    string
	HasAuth     bool
	Header      http.Header
}

// Response is a canned reply for one route.
type Response struct {
	Status int
	// Body is written as is when it is a string or []byte, and JSON-encoded otherwise.
	Body interface{}
	// Delay is slept before writing the reply.
	Delay time.Duration
}

// Elasticsearch is a minimal in-process Elasticsearch stand-in.
//
// GET / answers 200 with a banner unless SetRootStatus changed it. Every other
// route must be registered with Handle; unknown routes answer 404 with an
// index_not_found_exception body.
type Elasticsearch struct {
	server *httptest.Server

	mu         sync.Mutex
	requests   []Request
	routes     map[string]Response
	rootStatus int
	username   string
	password   string
}

// NewElasticsearch starts a fake cluster. Call Close when done.
func NewElasticsearch() *Elasticsearch {
	es := &Elasticsearch{routes: map[string]Response{}}
	es.server = httptest.NewServer(http.HandlerFunc(es.serve))
	return es
}

// URL returns the base address of the fake cluster.
func (es *Elasticsearch) URL() string {
	return es.server.URL
}

// Close stops the server.
func (es *Elasticsearch) Close() {
	es.server.Close()
}

// Handle registers a reply for method and path. The query string is ignored
// when matching.
func (es *Elasticsearch) Handle(method, path string, status int, body interface{}) {
	es.HandleResponse(method, path, Response{Status: status, Body: body})
}

// HandleResponse registers a full Response for method and path.
func (es *Elasticsearch) HandleResponse(method, path string, resp Response) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.routes[method+" "+path] = resp
}

// SetRootStatus changes the status of the connectivity check endpoint.
// Zero restores the default 200.
func (es *Elasticsearch) SetRootStatus(status int) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.rootStatus = status
}

// RequireAuth makes every route answer 401 unless the request carries the
// given basic auth credentials.
func (es *Elasticsearch) RequireAuth(username, password string) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.username = username
	es.password = password
}

// Requests returns a copy of all received requests in order.
func (es *Elasticsearch) Requests() []Request {
	es.mu.Lock()
	defer es.mu.Unlock()
	out := make([]Request, len(es.requests))
	copy(out, es.requests)
	return out
}

// APIRequests returns the received requests except the connectivity checks.
func (es *Elasticsearch) APIRequests() []Request {
	var out []Request
	for _, r := range es.Requests() {
		if r.Path != "/" {
			out = append(out, r)
		}
	}
	return out
}

// LastRequest returns the most recent non-root request, or nil.
func (es *Elasticsearch) LastRequest() *Request {
	reqs := es.APIRequests()
	if len(reqs) == 0 {
		return nil
	}
	return &reqs[len(reqs)-1]
}

// Reset forgets recorded requests but keeps the routes.
func (es *Elasticsearch) Reset() {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.requests = nil
}

func (es *Elasticsearch) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	user, pass, hasAuth := r.BasicAuth()

	es.mu.Lock()
	es.requests = append(es.requests, Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		EscapedPath: r.URL.EscapedPath(),
		RawQuery:    r.URL.RawQuery,
		Body:        string(body),
		Username:    user,
		Password:    pass,
		HasAuth:     hasAuth,
		Header:      r.Header.Clone(),
	})
	rootStatus := es.rootStatus
	wantUser, wantPass := es.username, es.password
	resp, found := es.routes[r.Method+" "+r.URL.Path]
	es.mu.Unlock()

	if wantUser != "" && (user != wantUser || pass != wantPass) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error":  map[string]string{"type": "security_exception", "reason": "missing authentication credentials"},
			"status": http.StatusUnauthorized,
		})
		return
	}

	if r.URL.Path == "/" && !found {
		if rootStatus != 0 && rootStatus != http.StatusOK {
			w.WriteHeader(rootStatus)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"cluster_name": "mock-cluster",
			"version":      map[string]string{"number": "8.15.0"},
			"tagline":      "You Know, for Search",
		})
		return
	}

	if !found {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":  map[string]string{"type": "index_not_found_exception", "reason": "no such index [" + r.URL.Path + "]"},
			"status": http.StatusNotFound,
		})
		return
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	switch b := resp.Body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(b))
	case []byte:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(b)
	default:
		writeJSON(w, status, b)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
