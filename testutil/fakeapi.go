package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// RecordedRequest is a request received by FakeAPI
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Reply is a canned response
type Reply struct {
	Status int
	Body   string
}

// FakeAPI serves the auth, client and app endpoints of the sleep platform
// from one httptest server. Replies are stubbed per method and concrete
// path; anything not stubbed answers 404.
type FakeAPI struct {
	Server *httptest.Server

	// Token, when set, is the only bearer accepted outside /v1/tokens.
	// Use SetToken once requests are in flight.
	Token string

	mu       sync.Mutex
	replies  map[string]Reply
	requests []RecordedRequest
}

// NewFakeAPI starts a fake API that is closed with the test
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{replies: map[string]Reply{}}

	r := chi.NewRouter()
	r.Use(f.record)

	r.Post("/v1/tokens", f.reply)
	r.Group(func(r chi.Router) {
		r.Use(f.requireBearer)

		// client API
		r.Get("/v1/users/me", f.reply)
		r.Get("/v1/users/{userID}", f.reply)
		r.Get("/v1/users/{userID}/trends", f.reply)
		r.Get("/v1/devices/{deviceID}", f.reply)

		// app API
		r.Get("/v2/users/{userID}/routines", f.reply)
		r.Get("/v1/users/{userID}/temperature", f.reply)
		r.Put("/v1/users/{userID}/temperature", f.reply)
		r.Put("/v1/users/{userID}/away-mode", f.reply)
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// AuthURL is the token endpoint
func (f *FakeAPI) AuthURL() string { return f.Server.URL + "/v1/tokens" }

// ClientAPIURL is the client API base
func (f *FakeAPI) ClientAPIURL() string { return f.Server.URL + "/v1" }

// AppAPIURL is the app API base
func (f *FakeAPI) AppAPIURL() string { return f.Server.URL }

// Stub sets the reply for method and path
func (f *FakeAPI) Stub(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = Reply{Status: status, Body: body}
}

// SetToken changes the accepted bearer token
func (f *FakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = token
}

// Requests returns every request received so far
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// RequestsTo returns the requests received for method and path
func (f *FakeAPI) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets recorded requests, keeping the stubs
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		token := f.Token
		f.mu.Unlock()
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) reply(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	rep, ok := f.replies[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"not stubbed"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.Status)
	_, _ = io.WriteString(w, rep.Body)
}
