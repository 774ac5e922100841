package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestPrometheusHandlerServesApplicationInstruments(t *testing.T) {
	for i := 0; i < 2; i++ {
		shutdown, err := InitMetrics(context.Background(), false)
		if err != nil {
			t.Fatalf("init metrics (round %d): %v", i, err)
		}
		t.Cleanup(func() { _ = shutdown(context.Background()) })
	}

	counter, err := otel.Meter("test").Int64Counter("truthtable.test.events.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	w := httptest.NewRecorder()
	PrometheusHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "truthtable_test_events") {
		t.Fatalf("expected application counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatal("expected runtime metrics in output")
	}
}
