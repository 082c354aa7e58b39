package audit

import (
	"context"
	"time"
)

// APIName identifies which side of an HTTP exchange a record belongs to.
type APIName string

const (
	// APIApplicationServer marks inbound calls into this service.
	APIApplicationServer APIName = "ApplicationServer"
	APIAccountsServer    APIName = "AccountsServer"
	APIClientsServer     APIName = "ClientsServer"
	// APIUnknown is used for outbound calls whose host is not in the host table.
	APIUnknown APIName = "Unknown"
)

// SystemUserID is recorded as the acting user until an authenticated subject
// exists on the request.
const SystemUserID = "SYSTEM"

// Record is a snapshot of one HTTP exchange, inbound or outbound. It is a value
// type: build it once with Builder and pass copies around.
//
// Pointer fields are nullable. ResponseStatus is nil only when the exchange
// never produced a response (transport failure).
type Record struct {
	RequestID       string
	APIName         APIName
	Method          string
	URL             string
	RequestHeaders  string
	RequestBody     *string
	ResponseStatus  *int
	ResponseHeaders *string
	ResponseBody    *string
	ExecutionTimeMs int64
	Success         bool
	ErrorMessage    *string
	ExceptionName   *string
	CorrelationID   *string
	UserID          string
	CreatedAt       time.Time
}

// Store persists completed records. Implementations must be safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, record Record) error
}

// Emitter hands a record to the persistence path without waiting for it.
// Emit never blocks on storage and never reports storage failures.
type Emitter interface {
	Emit(ctx context.Context, record Record)
}

// IsSuccessStatus reports whether status is in the 2xx class.
func IsSuccessStatus(status int) bool {
	return status >= 200 && status <= 299
}

// Builder assembles a Record in two phases: request fields before the
// exchange, response or failure fields after it.
type Builder struct {
	rec Record
}

// NewBuilder starts a record with defaults applied: Success=false and the
// system user.
func NewBuilder(requestID string, api APIName) *Builder {
	return &Builder{rec: Record{
		RequestID: requestID,
		APIName:   api,
		UserID:    SystemUserID,
	}}
}

func (b *Builder) Request(method, url, headers string, body []byte) *Builder {
	b.rec.Method = method
	b.rec.URL = url
	b.rec.RequestHeaders = headers
	b.rec.RequestBody = nonEmpty(body)
	return b
}

func (b *Builder) CorrelationID(id string) *Builder {
	if id != "" {
		b.rec.CorrelationID = &id
	}
	return b
}

func (b *Builder) UserID(id string) *Builder {
	if id != "" {
		b.rec.UserID = id
	}
	return b
}

// Response fills the response side and classifies success from status.
// A nil body is stored as an empty string: a response arrived, it was empty.
func (b *Builder) Response(status int, headers string, body []byte) *Builder {
	b.rec.ResponseStatus = &status
	b.rec.ResponseHeaders = &headers
	s := string(body)
	b.rec.ResponseBody = &s
	b.rec.Success = IsSuccessStatus(status)
	return b
}

// Failure marks the exchange as failed without a response.
func (b *Builder) Failure(message, exceptionName string) *Builder {
	b.rec.ResponseStatus = nil
	b.rec.ResponseHeaders = nil
	b.rec.ResponseBody = nil
	b.rec.Success = false
	b.rec.ErrorMessage = &message
	b.rec.ExceptionName = &exceptionName
	return b
}

// Exception records a failure raised while a response was being produced.
// Response fields are kept.
func (b *Builder) Exception(message, exceptionName string) *Builder {
	b.rec.Success = false
	b.rec.ErrorMessage = &message
	b.rec.ExceptionName = &exceptionName
	return b
}

func (b *Builder) ErrorMessage(msg string) *Builder {
	if msg != "" {
		b.rec.ErrorMessage = &msg
	}
	return b
}

func (b *Builder) Elapsed(d time.Duration) *Builder {
	b.rec.ExecutionTimeMs = d.Milliseconds()
	return b
}

// Build returns a copy, so one builder can produce the failure record after
// the request fields were set.
func (b *Builder) Build() Record {
	return b.rec
}

func nonEmpty(body []byte) *string {
	if len(body) == 0 {
		return nil
	}
	s := string(body)
	return &s
}
