package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientTransportPropagatesRequestID(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(RequestIDHeader)
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: ClientTransport(nil)}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("doing request: %v", err)
	}
	resp.Body.Close()

	if got := <-seen; got != "req-42" {
		t.Fatalf("expected backend to see request id %q, got %q", "req-42", got)
	}
	if req.Header.Get(RequestIDHeader) != "" {
		t.Fatal("transport must not modify the caller's request")
	}
}

func TestClientTransportWithoutRequestID(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(RequestIDHeader)
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: ClientTransport(http.DefaultTransport)}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("doing request: %v", err)
	}
	resp.Body.Close()

	if got := <-seen; got != "" {
		t.Fatalf("expected no request id, got %q", got)
	}
}
