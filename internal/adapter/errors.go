package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors a non-2xx [APIError] matches with [errors.Is], selected by
// HTTP status code.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

var (
	// ErrNilRequest is returned when Dispatch is called without a request.
	ErrNilRequest = errors.New("nil pending request")
	// ErrRequestReused is returned when a PendingRequest is dispatched twice.
	ErrRequestReused = errors.New("pending request already dispatched")
)

// ErrorKind classifies a [TransportError].
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindDNS        ErrorKind = "dns"
	KindTLS        ErrorKind = "tls"
	KindConnection ErrorKind = "connection"
	KindBody       ErrorKind = "body"
	KindUnknown    ErrorKind = "unknown"
)

// TransportError reports a request that did not complete an HTTP exchange:
// the connection, TLS handshake or name resolution failed, the request timed
// out, or the body could not be read. It is never retried by the transport.
type TransportError struct {
	Kind   ErrorKind
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s error: %s %s: %v", e.Kind, e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because a deadline passed.
func (e *TransportError) Timeout() bool {
	return e.Kind == KindTimeout
}

// DecodingError reports a completed HTTP exchange whose body is not the JSON
// the operation expected.
type DecodingError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s response (http %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response, with the provider's error envelope decoded
// when present.
type APIError struct {
	Op            string
	StatusCode    int
	Code          int
	ErrorCode     int
	ErrorName     string
	Description   string
	CorrelationID string
	Body          []byte
}

func (e *APIError) Error() string {
	msg := e.Description
	if msg == "" {
		msg = string(e.Body)
	}
	if e.CorrelationID != "" {
		return fmt.Sprintf("%s: http %d: %s (correlation id %s)", e.Op, e.StatusCode, msg, e.CorrelationID)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, msg)
}

// Is matches the status sentinel of the response, so callers can write
// errors.Is(err, adapter.ErrConflict).
func (e *APIError) Is(target error) bool {
	return statusSentinel(e.StatusCode) == target
}
