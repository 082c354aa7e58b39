package httpaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/requestcontext"
)

type requestBodyKey struct{}

// RequestBody returns the inbound request body captured by Middleware.
func RequestBody(ctx context.Context) []byte {
	body, _ := ctx.Value(requestBodyKey{}).([]byte)
	return body
}

// Middleware audits inbound requests as APIApplicationServer exchanges.
type Middleware struct {
	emitter audit.Emitter
	opts    options
}

// NewMiddleware creates an inbound audit middleware.
func NewMiddleware(emitter audit.Emitter, opts ...Option) *Middleware {
	return &Middleware{emitter: emitter, opts: newOptions(opts)}
}

// Handler buffers the request body and the whole response, emits one record
// after next returns, then replays the buffered response unchanged.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := m.opts.now()
		requestID := m.opts.newID()
		correlationID := r.Header.Get(HeaderCorrelationID)

		body := m.captureRequestBody(r)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithCorrelationID(ctx, correlationID)
		ctx = context.WithValue(ctx, requestBodyKey{}, body)
		r = r.WithContext(ctx)

		builder := audit.NewBuilder(requestID, audit.APIApplicationServer).
			Request(r.Method, requestURL(r), FormatHeaders(r.Header), body).
			CorrelationID(correlationID)

		bw := newBufferedWriter()

		defer func() {
			if p := recover(); p != nil {
				if !bw.wroteHeader {
					bw.WriteHeader(http.StatusInternalServerError)
				}
				builder.Exception(fmt.Sprint(p), fmt.Sprintf("%T", p))
				m.emit(ctx, builder, bw, start)
				bw.replay(w)
				panic(p)
			}
		}()

		next.ServeHTTP(bw, r)

		m.emit(ctx, builder, bw, start)
		bw.replay(w)
	})
}

func (m *Middleware) captureRequestBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		m.opts.logger.WarnContext(r.Context(), "failed to read request body for audit", "error", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return body
}

// emit must never panic or fail the request.
func (m *Middleware) emit(ctx context.Context, builder *audit.Builder, bw *bufferedWriter, start time.Time) {
	defer func() {
		if p := recover(); p != nil {
			m.opts.logger.ErrorContext(ctx, "audit record assembly failed", "panic", fmt.Sprint(p))
		}
	}()

	elapsed := m.opts.now().Sub(start)
	status := bw.statusCode()
	body := bw.buf.Bytes()

	builder.Response(status, FormatHeaders(bw.header), body).Elapsed(elapsed)
	if !audit.IsSuccessStatus(status) {
		builder.ErrorMessage(errorMessageFrom(body))
	}
	rec := builder.Build()

	m.opts.metrics.observe(DirectionInbound, string(rec.APIName), outcome(rec.Success, true), elapsed.Seconds())
	m.opts.logger.InfoContext(ctx, "inbound request completed",
		"request_id", rec.RequestID,
		"correlation_id", requestcontext.CorrelationID(ctx),
		"method", rec.Method,
		"url", rec.URL,
		"status", status,
		"duration_ms", rec.ExecutionTimeMs,
	)
	m.emitter.Emit(ctx, rec)
}

func requestURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// errorMessageFrom extracts the errorMessage field of a JSON error body.
// Non-JSON bodies yield "".
func errorMessageFrom(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ErrorMessage
}
