package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// capturedRequest holds the details of one request seen by testHandler.
type capturedRequest struct {
	method        string
	path          string
	body          string
	contentType   string
	authorization string
	userAgent     string
	accept        string
}

// cannedResponse is what testHandler returns for a route.
type cannedResponse struct {
	statusCode int
	body       string
	// block, when set, holds the response until the channel is closed.
	block chan struct{}
}

// testHandler records every request and serves canned responses keyed by
// "METHOD /path". Unknown routes get a 404.
type testHandler struct {
	mu       sync.Mutex
	requests []capturedRequest
	routes   map[string]cannedResponse
}

func newTestHandler(routes map[string]cannedResponse) *testHandler {
	return &testHandler{routes: routes}
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	h.mu.Lock()
	h.requests = append(h.requests, capturedRequest{
		method:        r.Method,
		path:          r.URL.Path,
		body:          string(data),
		contentType:   r.Header.Get("Content-Type"),
		authorization: r.Header.Get("Authorization"),
		userAgent:     r.Header.Get("User-Agent"),
		accept:        r.Header.Get("Accept"),
	})
	route, ok := h.routes[r.Method+" "+r.URL.Path]
	h.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}
	if route.block != nil {
		select {
		case <-route.block:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if route.statusCode != 0 {
		w.WriteHeader(route.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if route.body != "" {
		_, _ = w.Write([]byte(route.body))
	}
}

// requestsTo returns the captured requests matching method and path.
func (h *testHandler) requestsTo(method, path string) []capturedRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []capturedRequest
	for _, r := range h.requests {
		if r.method == method && r.path == path {
			out = append(out, r)
		}
	}
	return out
}

const userBody = `{"id": 42, "login": "octocat"}`

// newTestSession creates a Session pointed at a test server with the given handler.
func newTestSession(h http.Handler, token string) (*Session, *httptest.Server) {
	srv := httptest.NewServer(h)
	s := NewSession(context.Background(), Options{BaseURL: srv.URL, Token: token})
	return s, srv
}

// --- MakeRequest ---

func TestMakeRequest_Headers(t *testing.T) {
	h := newTestHandler(map[string]cannedResponse{
		"GET /user": {body: userBody},
		"GET /ping": {body: `{}`},
	})
	s, srv := newTestSession(h, "s3cret")
	defer srv.Close()

	if _, err := s.MakeRequest(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("MakeRequest() error = %v", err)
	}

	reqs := h.requestsTo(http.MethodGet, "/ping")
	if len(reqs) != 1 {
		t.Fatalf("got %d requests to /ping, want 1", len(reqs))
	}
	r := reqs[0]
	if r.userAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", r.userAgent, DefaultUserAgent)
	}
	if r.authorization != "token s3cret" {
		t.Errorf("Authorization = %q, want %q", r.authorization, "token s3cret")
	}
	if r.accept != mediaTypeV3 {
		t.Errorf("Accept = %q, want %q", r.accept, mediaTypeV3)
	}
	if r.contentType != "" {
		t.Errorf("Content-Type = %q, want empty for a bodyless request", r.contentType)
	}
}

func TestMakeRequest_NoToken(t *testing.T) {
	h := newTestHandler(map[string]cannedResponse{
		"GET /ping": {body: `{}`},
	})
	s, srv := newTestSession(h, "")
	defer srv.Close()

	if _, err := s.MakeRequest(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("MakeRequest() error = %v", err)
	}
	reqs := h.requestsTo(http.MethodGet, "/ping")
	if len(reqs) != 1 {
		t.Fatalf("got %d requests to /ping, want 1", len(reqs))
	}
	if reqs[0].authorization != "" {
		t.Errorf("Authorization = %q, want no header without a token", reqs[0].authorization)
	}
}

func TestMakeRequest_Body(t *testing.T) {
	h := newTestHandler(map[string]cannedResponse{
		"POST /echo": {statusCode: http.StatusCreated, body: `{"ok":true}`},
	})
	s, srv := newTestSession(h, "")
	defer srv.Close()

	resp, err := s.MakeRequest(context.Background(), http.MethodPost, "/echo", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("MakeRequest() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Body = %q", resp.Body)
	}

	reqs := h.requestsTo(http.MethodPost, "/echo")
	if len(reqs) != 1 {
		t.Fatalf("got %d requests to /echo, want 1", len(reqs))
	}
	if reqs[0].contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", reqs[0].contentType)
	}
	if reqs[0].body != `{"a":1}` {
		t.Errorf("request body = %q", reqs[0].body)
	}
}

func TestMakeRequest_NonSuccessStatusIsData(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
	}{
		{"OK", http.StatusOK, `[]`},
		{"NotFound", http.StatusNotFound, `{"message":"Not Found"}`},
		{"Unprocessable", http.StatusUnprocessableEntity, `{"message":"Validation Failed"}`},
		{"ServerError", http.StatusInternalServerError, `oops`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(map[string]cannedResponse{
				"GET /thing": {statusCode: tc.status, body: tc.body},
			})
			s, srv := newTestSession(h, "")
			defer srv.Close()

			resp, err := s.MakeRequest(context.Background(), http.MethodGet, "/thing", nil)
			if err != nil {
				t.Fatalf("MakeRequest() error = %v, want nil for HTTP %d", err, tc.status)
			}
			if resp.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tc.status)
			}
			if string(resp.Body) != tc.body {
				t.Errorf("Body = %q, want %q", resp.Body, tc.body)
			}
		})
	}
}

func TestMakeRequest_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewSession(context.Background(), Options{BaseURL: url})
	resp, err := s.MakeRequest(context.Background(), http.MethodGet, "/user", nil)
	if err == nil {
		t.Fatalf("MakeRequest() = %+v, want connection error", resp)
	}
	if resp != nil {
		t.Errorf("response = %+v, want nil on error", resp)
	}
}

// --- APIError ---

func TestNewAPIError(t *testing.T) {
	for _, tc := range []struct {
		name string
		resp *Response
		want string
	}{
		{"JSONMessage", &Response{StatusCode: 401, Body: []byte(`{"message":"Bad credentials"}`)}, "HTTP 401: Bad credentials"},
		{"PlainBody", &Response{StatusCode: 502, Body: []byte("bad gateway\n")}, "HTTP 502: bad gateway"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := newAPIError(tc.resp)
			if got := err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
			var apiErr *APIError
			if !errors.As(error(err), &apiErr) {
				t.Fatal("expected *APIError")
			}
		})
	}
}

func TestResponseErr(t *testing.T) {
	if err := (&Response{StatusCode: 201}).Err(); err != nil {
		t.Errorf("Err() for 201 = %v, want nil", err)
	}
	err := (&Response{StatusCode: 422, Body: []byte(`{"message":"Validation Failed"}`)}).Err()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 422 || apiErr.Message != "Validation Failed" {
		t.Errorf("Err() for 422 = %v, want *APIError 422", err)
	}
}
