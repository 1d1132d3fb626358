package internal

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

const (
	testClientAPI = "https://client.test/v1"
	testAppAPI    = "https://app.test"
)

var testNow = time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)

type stubReply struct {
	resp *Response
	err  error
}

// stubTransport answers by method and URL (query excluded) and records every call
type stubTransport struct {
	mu      sync.Mutex
	replies map[string]stubReply
	calls   []Request
}

func newStubTransport() *stubTransport {
	return &stubTransport{replies: map[string]stubReply{}}
}

func (s *stubTransport) on(method, rawURL string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+rawURL] = stubReply{resp: &Response{StatusCode: status, Body: []byte(body)}}
}

func (s *stubTransport) fail(method, rawURL string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+rawURL] = stubReply{err: err}
}

func (s *stubTransport) noResponse(method, rawURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+rawURL] = stubReply{}
}

func (s *stubTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, *req)
	reply, ok := s.replies[req.Method+" "+req.URL]
	if !ok {
		return &Response{StatusCode: 404, Body: []byte(`{"error":"not stubbed"}`)}, nil
	}
	return reply.resp, reply.err
}

func (s *stubTransport) requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.calls))
	copy(out, s.calls)
	return out
}

// authorizedAPI returns an apiClient holding a session valid for an hour after testNow
func authorizedAPI(tr Transport) *apiClient {
	sessions := NewSessionStore(func() time.Time { return testNow })
	sessions.Set(Session{BearerToken: "tok", ExpiresAt: testNow.Add(time.Hour), OwnerUserID: "owner"})
	return &apiClient{transport: tr, sessions: sessions}
}

// bodyJSON re-encodes a request body into a generic map
func bodyJSON(t *testing.T, req Request) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(req.Body)
	if err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Failed to decode body %s: %v", data, err)
	}
	return out
}
