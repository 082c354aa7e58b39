package httpaudit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/requestcontext"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Transport is an http.RoundTripper that audits each outbound call.
//
// A response with any status, 4xx and 5xx included, is returned unchanged
// with its body re-readable. A transport or body read error is audited with
// no response status and returned unchanged.
type Transport struct {
	emitter audit.Emitter
	opts    options
	tracer  trace.Tracer
}

// NewTransport wraps the base RoundTripper (http.DefaultTransport unless
// WithBase is given).
func NewTransport(emitter audit.Emitter, opts ...Option) *Transport {
	return &Transport{
		emitter: emitter,
		opts:    newOptions(opts),
		tracer:  otel.Tracer("eligibility/pkg/platform/audit/httpaudit"),
	}
}

// APIName resolves host (without port) against the host table.
func (t *Transport) APIName(host string) audit.APIName {
	if api, ok := t.opts.hosts[host]; ok {
		return api
	}
	return audit.APIUnknown
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := t.opts.now()
	api := t.APIName(req.URL.Hostname())

	ctx, span := t.tracer.Start(req.Context(), "upstream "+string(api),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
		),
	)
	defer span.End()

	builder := audit.NewBuilder(t.opts.newID(), api).
		CorrelationID(req.Header.Get(HeaderCorrelationID))

	out := req.Clone(ctx)
	body, err := drain(req.Body)
	if err != nil {
		builder.Request(req.Method, req.URL.String(), FormatHeaders(req.Header), nil)
		t.fail(ctx, span, builder, start, err)
		return nil, err
	}
	if req.Body != nil && req.Body != http.NoBody {
		out.Body = io.NopCloser(bytes.NewReader(body))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	builder.Request(req.Method, req.URL.String(), FormatHeaders(req.Header), body)

	resp, err := t.opts.base.RoundTrip(out)
	if err != nil {
		t.fail(ctx, span, builder, start, err)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.fail(ctx, span, builder, start, err)
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	builder.Response(resp.StatusCode, FormatHeaders(resp.Header), respBody)
	t.emit(ctx, builder, start, true)
	return resp, nil
}

func (t *Transport) fail(ctx context.Context, span trace.Span, builder *audit.Builder, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	builder.Failure(err.Error(), fmt.Sprintf("%T", err))
	t.emit(ctx, builder, start, false)
}

// emit must never panic or change the result of RoundTrip.
func (t *Transport) emit(ctx context.Context, builder *audit.Builder, start time.Time, hasResponse bool) {
	defer func() {
		if p := recover(); p != nil {
			t.opts.logger.ErrorContext(ctx, "audit record assembly failed", "panic", fmt.Sprint(p))
		}
	}()

	elapsed := t.opts.now().Sub(start)
	rec := builder.Elapsed(elapsed).Build()

	t.opts.metrics.observe(DirectionOutbound, string(rec.APIName), outcome(rec.Success, hasResponse), elapsed.Seconds())

	attrs := []any{
		"request_id", rec.RequestID,
		"correlation_id", requestcontext.CorrelationID(ctx),
		"api_name", string(rec.APIName),
		"method", rec.Method,
		"url", rec.URL,
		"duration_ms", rec.ExecutionTimeMs,
	}
	if rec.ResponseStatus != nil {
		t.opts.logger.InfoContext(ctx, "outbound call completed", append(attrs, "status", *rec.ResponseStatus)...)
	} else {
		t.opts.logger.ErrorContext(ctx, "outbound call failed", append(attrs, "error", *rec.ErrorMessage)...)
	}
	t.emitter.Emit(ctx, rec)
}

func drain(body io.ReadCloser) ([]byte, error) {
	if body == nil || body == http.NoBody {
		return nil, nil
	}
	defer body.Close()
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}
