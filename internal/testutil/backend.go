package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Backend is a fake truth-table service. Reply decides the status and body
// for each formula; every received query is recorded.
type Backend struct {
	*httptest.Server

	mu      sync.Mutex
	queries []*http.Request
}

// NewBackend starts a Backend closed automatically at test cleanup.
func NewBackend(t testing.TB, reply func(formula string) (int, string)) *Backend {
	t.Helper()

	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.Clone(r.Context()))
		b.mu.Unlock()

		status, body := reply(r.URL.Query().Get("formula"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(b.Close)

	return b
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.queries...)
}

// TwoVariableTable is a backend reply for a formula over p and q.
const TwoVariableTable = `{"p":[true,true,false,false],"q":[true,false,true,false],"output":[true,false,true,true]}`
