package web

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"dmath-truthtable/internal/client"
	"dmath-truthtable/internal/observability"
	"dmath-truthtable/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, timeout time.Duration, reply func(string) (int, string)) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing web metrics: %v", err)
	}

	backend := testutil.NewBackend(t, reply)
	c, err := client.New(client.Options{BaseURL: backend.URL, Timeout: timeout})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	r := chi.NewRouter()
	NewHandler(c).RegisterRoutes(r)
	return r
}

func okTable(string) (int, string) {
	return http.StatusOK, testutil.TwoVariableTable
}

func TestTruthTableReturnsDisplayModel(t *testing.T) {
	router := newTestRouter(t, time.Second, okTable)

	w := testutil.Get(router, "/api/truthtable?formula=p-%3Eq")

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body TruthTableResponse
	testutil.DecodeJSONBody(t, w.Body, &body)

	if body.Formula != "p->q" {
		t.Fatalf("expected formula %q, got %q", "p->q", body.Formula)
	}
	if got := strings.Join(body.Headers, ","); got != "p,q,output" {
		t.Fatalf("expected headers p,q,output, got %s", got)
	}
	if len(body.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(body.Rows))
	}
	if body.Rows[1]["output"] != false || body.Rows[1]["q"] != false {
		t.Fatalf("unexpected second row %#v", body.Rows[1])
	}
}

func TestTruthTableMissingFormula(t *testing.T) {
	router := newTestRouter(t, time.Second, okTable)

	w := testutil.Get(router, "/api/truthtable")

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestTruthTableUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		reply   func(string) (int, string)
		status  int
		kind    string
		message string
	}{
		{
			name:    "server error",
			timeout: time.Second,
			reply:   func(string) (int, string) { return http.StatusInternalServerError, "boom" },
			status:  http.StatusBadGateway,
			kind:    "status",
			message: "server returned status 500",
		},
		{
			name:    "missing output",
			timeout: time.Second,
			reply:   func(string) (int, string) { return http.StatusOK, `{"p":[true]}` },
			status:  http.StatusBadGateway,
			kind:    "malformed",
			message: "invalid response from server",
		},
		{
			name:    "length mismatch",
			timeout: time.Second,
			reply:   func(string) (int, string) { return http.StatusOK, `{"p":[true],"output":[]}` },
			status:  http.StatusBadGateway,
			kind:    "malformed",
			message: "invalid response from server",
		},
		{
			name:    "timeout",
			timeout: 20 * time.Millisecond,
			reply: func(string) (int, string) {
				time.Sleep(200 * time.Millisecond)
				return http.StatusOK, testutil.TwoVariableTable
			},
			status:  http.StatusGatewayTimeout,
			kind:    "timeout",
			message: "request timed out",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, tc.timeout, tc.reply)

			w := testutil.Get(router, "/api/truthtable?formula=p")

			testutil.CheckResponseCode(t, tc.status, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["kind"] != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, body["kind"])
			}
			if body["error"] != tc.message {
				t.Fatalf("expected error %q, got %q", tc.message, body["error"])
			}
		})
	}
}

func TestPageWithoutFormulaRendersForm(t *testing.T) {
	router := newTestRouter(t, time.Second, okTable)

	w := testutil.Get(router, "/")

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body := w.Body.String()
	if !strings.Contains(body, `name="formula"`) {
		t.Fatal("expected formula input in page")
	}
	if strings.Contains(body, `id="results"`) || strings.Contains(body, `id="error"`) {
		t.Fatal("did not expect results or error before a submission")
	}
}

func TestPageRendersTable(t *testing.T) {
	router := newTestRouter(t, time.Second, okTable)

	w := testutil.Get(router, "/?formula=p%26q")

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body := w.Body.String()
	if !strings.Contains(body, `id="results"`) {
		t.Fatal("expected results table")
	}
	if !strings.Contains(body, `value="p&amp;q"`) {
		t.Fatal("expected escaped formula echoed in the input")
	}
	if !strings.Contains(body, "<th>p</th><th>q</th><th>output</th>") {
		t.Fatalf("expected headers with output last, got:\n%s", body)
	}
	if got := strings.Count(body, "<td>T</td>"); got != 7 {
		t.Fatalf("expected 7 true cells, got %d", got)
	}
}

func TestPageRendersError(t *testing.T) {
	router := newTestRouter(t, time.Second, func(string) (int, string) {
		return http.StatusInternalServerError, "boom"
	})

	w := testutil.Get(router, "/?formula=p")

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body := w.Body.String()
	if !strings.Contains(body, "server returned status 500") {
		t.Fatal("expected error message in page")
	}
	if strings.Contains(body, `id="results"`) {
		t.Fatal("did not expect results table on error")
	}
}
