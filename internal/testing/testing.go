// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// Hits records the requests received by a fake server.
type Hits struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (h *Hits) add(r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, r)
}

// Count returns the number of requests received.
func (h *Hits) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requests)
}

// CountPath returns the number of requests received for path.
func (h *Hits) CountPath(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.requests {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request, or nil.
func (h *Hits) Last() *http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.requests) == 0 {
		return nil
	}
	return h.requests[len(h.requests)-1]
}

// TokenServer is a fake client-credentials endpoint.
type TokenServer struct {
	*httptest.Server
	Hits *Hits

	ClientID     string
	ClientSecret string
	AccessToken  string
}

// NewTokenServer starts a token endpoint that accepts the given client id/secret via HTTP Basic
// auth and answers grant_type=client_credentials with token. Anything else gets a 401
// invalid_client error.
func NewTokenServer(t *testing.T, clientID, clientSecret, token string) *TokenServer {
	t.Helper()

	ts := &TokenServer{Hits: &Hits{}, ClientID: clientID, ClientSecret: clientSecret, AccessToken: token}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.Hits.add(r)

		id, secret, ok := r.BasicAuth()
		if err := r.ParseForm(); err != nil || r.Method != http.MethodPost {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
			return
		}

		if !ok || id != ts.ClientID || secret != ts.ClientSecret {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "Invalid client",
			})
			return
		}

		if r.PostForm.Get("grant_type") != "client_credentials" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": ts.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(ts.Close)

	return ts
}

// TokenURL returns the endpoint URL to hand to the credential provider.
func (ts *TokenServer) TokenURL() string {
	return ts.URL + "/api/token"
}

// CatalogServer is a fake resource API serving canned JSON bodies keyed by path.
type CatalogServer struct {
	*httptest.Server
	Hits *Hits

	mu     sync.Mutex
	token  string
	routes map[string]string
	gate   chan struct{}
}

// NewCatalogServer starts a fake resource API. Requests must carry "Bearer <token>"; unknown
// paths answer 404 with a Spotify style error body.
func NewCatalogServer(t *testing.T, token string, routes map[string]string) *CatalogServer {
	t.Helper()

	cs := &CatalogServer{Hits: &Hits{}, token: token, routes: make(map[string]string)}
	for path, body := range routes {
		cs.routes[path] = body
	}

	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.Hits.add(r)

		cs.mu.Lock()
		gate := cs.gate
		body, found := cs.routes[r.URL.Path]
		cs.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if r.Header.Get("Authorization") != "Bearer "+cs.token {
			writeAPIError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		if !found {
			writeAPIError(w, http.StatusNotFound, "Resource not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(cs.Close)

	return cs
}

// Set replaces the body served for path.
func (cs *CatalogServer) Set(path, body string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.routes[path] = body
}

// Hold makes subsequent requests block until the returned release func is called.
func (cs *CatalogServer) Hold() (release func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	gate := make(chan struct{})
	cs.gate = gate

	var once sync.Once
	return func() {
		once.Do(func() {
			cs.mu.Lock()
			if cs.gate == gate {
				cs.gate = nil
			}
			cs.mu.Unlock()
			close(gate)
		})
	}
}

// PagingJSON builds a paging envelope around raw item JSON.
func PagingJSON(total, offset, limit int, items ...string) string {
	list := "["
	for i, item := range items {
		if i > 0 {
			list += ","
		}
		list += item
	}
	list += "]"
	return fmt.Sprintf(`{"items":%s,"total":%d,"offset":%d,"limit":%d,"next":null,"previous":null}`, list, total, offset, limit)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"status": status, "message": message},
	})
}

// FakePlayer records Start/Pause calls. It satisfies the preview player interface.
type FakePlayer struct {
	mu     sync.Mutex
	url    string
	events *[]string

	Started int
	Paused  int
	Err     error
}

// NewFakePlayer creates a player that appends "start:<url>"/"pause:<url>" to events when non-nil.
func NewFakePlayer(url string, events *[]string) *FakePlayer {
	return &FakePlayer{url: url, events: events}
}

func (p *FakePlayer) URL() string { return p.url }

func (p *FakePlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Started++
	if p.events != nil {
		*p.events = append(*p.events, "start:"+p.url)
	}
	return nil
}

func (p *FakePlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Paused++
	if p.events != nil {
		*p.events = append(*p.events, "pause:"+p.url)
	}
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
