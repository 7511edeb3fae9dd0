package executor

import (
	"fmt"
	"time"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
	"github.com/gqlpad/gqlpad/pkg/session"
)

// Response captures a completed HTTP exchange. The body is kept verbatim
// regardless of status code; the status is recorded but not interpreted.
type Response struct {
	Body            string
	Status          int
	Elapsed         time.Duration
	ErrorCount      int
	ErrorCountKnown bool
}

// Size returns the response payload size in bytes.
func (r *Response) Size() int64 {
	return int64(len(r.Body))
}

// Outcome is the terminal result of one execution: a response, or the error
// that ended it. Exactly one of Response and Err is set.
type Outcome struct {
	Endpoint endpoint.Endpoint
	Response *Response
	Err      error
}

// ResultSink receives outcomes. The executor serializes Deliver calls, so a
// sink needs no locking of its own.
type ResultSink interface {
	Deliver(binding *session.Binding, outcome Outcome)
}

// SinkFunc adapts a function to the ResultSink interface.
type SinkFunc func(*session.Binding, Outcome)

// Deliver implements ResultSink.
func (f SinkFunc) Deliver(b *session.Binding, o Outcome) { f(b, o) }

// EncodingError means the request could not be constructed: bad variables
// JSON, an unusable URL, or a failed auth resolution. It is raised before
// dispatch; no request is sent.
type EncodingError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodingError) Unwrap() error { return e.Err }

// TransportError means the dispatch itself failed: connection refused, DNS,
// timeout, or a body read error. No retry is attempted.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }
