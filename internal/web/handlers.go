// Package web is the browser front end: an HTML form backed by the
// presenter, and a JSON endpoint serving the same display model.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"dmath-truthtable/internal/client"
	"dmath-truthtable/internal/handlers"
	"dmath-truthtable/internal/observability"
	"dmath-truthtable/internal/truthtable"
	"dmath-truthtable/internal/view"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the web front end's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("web")

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// Handler serves the front end. Each HTTP request gets its own presenter;
// the fetcher is shared.
type Handler struct {
	fetcher view.Fetcher
}

func NewHandler(fetcher view.Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// Page handles GET /. Without a formula parameter it renders the empty form.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := pageData{}

	if r.URL.Query().Has(client.FormulaParam) {
		state, span := h.submit(ctx, "page", r.URL.Query().Get(client.FormulaParam))
		span.End()

		data.Formula = state.Formula
		data.Submitted = true
		if state.Err != nil {
			data.Error = state.Message()
		} else {
			data.Headers = state.Model.Headers
			data.Rows = make([][]string, len(state.Model.Rows))
			for i := range state.Model.Rows {
				cells := state.Model.Cells(i)
				data.Rows[i] = make([]string, len(cells))
				for j, c := range cells {
					data.Rows[i][j] = truthtable.FormatValue(c)
				}
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		observability.LoggerWithTrace(ctx).Error("rendering page", zap.Error(err))
	}
}

// TruthTable handles GET /api/truthtable?formula=...
func (h *Handler) TruthTable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has(client.FormulaParam) {
		handlers.WriteError(w, http.StatusBadRequest, "missing formula parameter")
		return
	}

	state, span := h.submit(r.Context(), "api", query.Get(client.FormulaParam))
	defer span.End()

	ctx := trace.ContextWithSpan(r.Context(), span)
	logger := observability.LoggerWithTrace(ctx)

	if state.Err != nil {
		kind := client.KindOf(state.Err)
		observability.RecordError(ctx, span, logger, errorCounter, "api", kind.String(), state.Message(), state.Err, statusFor(kind), w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, TruthTableResponse{
		Formula: state.Formula,
		Headers: state.Model.Headers,
		Rows:    state.Model.Rows,
	})
}

// submit runs one presenter submission inside a span. The caller ends the
// span.
func (h *Handler) submit(ctx context.Context, surface, formula string) (view.State, trace.Span) {
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("web.%s.submit", surface),
		trace.WithAttributes(
			attribute.String("web.surface", surface),
			attribute.String("truthtable.formula", formula),
			attribute.String("request.id", requestID),
		),
	)
	logger := observability.LoggerWithTrace(ctx)

	p := view.New(h.fetcher)
	p.SetFormula(formula)
	err := p.Submit(ctx)
	state := p.Snapshot()

	attrs := metric.WithAttributes(attribute.String("surface", surface))
	submissionCounter.Add(ctx, 1, attrs)

	if err != nil {
		// The API reports through observability.RecordError; the page shows
		// the message inline, so record it here.
		if surface == "page" {
			span.RecordError(err)
			span.SetStatus(codes.Error, state.Message())
			errorCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("operation", surface),
				attribute.String("kind", client.KindOf(err).String()),
			))
			logger.Warn("submission failed",
				zap.String("formula", formula),
				zap.Error(err),
				zap.String("request_id", requestID),
			)
		}
		return state, span
	}

	rows := len(state.Model.Rows)
	rowsHistogram.Record(ctx, int64(rows), attrs)
	span.SetAttributes(attribute.Int("truthtable.rows", rows))
	span.SetStatus(codes.Ok, "")

	logger.Info("truth table served",
		zap.String("surface", surface),
		zap.String("formula", formula),
		zap.Int("rows", rows),
		zap.Int("columns", len(state.Model.Headers)),
		zap.String("request_id", requestID),
	)

	return state, span
}

func statusFor(kind client.Kind) int {
	switch kind {
	case client.KindTimeout:
		return http.StatusGatewayTimeout
	case client.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
