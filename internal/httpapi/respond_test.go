package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDMiddleware_PropagatesHeader(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/health", nil)
	request.Header.Set("X-Request-ID", "req-from-client")

	RequestIDMiddleware(inner).ServeHTTP(recorder, request)

	if seen != "req-from-client" {
		t.Errorf("expected handler to see 'req-from-client', got '%s'", seen)
	}
	if got := recorder.Header().Get("X-Request-ID"); got != "req-from-client" {
		t.Errorf("expected response header 'req-from-client', got '%s'", got)
	}
}

func TestRequestIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	RequestIDMiddleware(inner).ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	if !strings.HasPrefix(seen, "req-") {
		t.Errorf("expected a generated 'req-' id, got '%s'", seen)
	}
	if got := recorder.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("expected response header '%s', got '%s'", seen, got)
	}
}

func TestGetRequestID_MissingFromContext(t *testing.T) {
	request := httptest.NewRequest("GET", "/health", nil)
	if got := getRequestID(request.Context()); got != "" {
		t.Errorf("expected empty id without middleware, got '%s'", got)
	}
}
