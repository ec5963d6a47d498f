package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
)

// PendingRequest is a request that has not been signed yet. It is built per
// call and dispatched at most once: its body is consumed on send.
type PendingRequest struct {
	// Method is the HTTP method. It is uppercased before signing.
	Method string

	// PathWithQuery is the request target without scheme and host,
	// e.g. "/resources/applicants?levelName=basic". It is signed and sent
	// byte for byte.
	PathWithQuery string

	// Body is the exact byte sequence to send. Nil means an empty body.
	Body io.ReadSeeker

	// ContentLength is the length of Body, or -1 when unknown.
	ContentLength int64

	// Header holds additional request headers such as Content-Type.
	Header http.Header

	// Stream makes Dispatch hand the response body over unread in
	// [Response.Stream] instead of buffering it.
	Stream bool

	dispatched atomic.Bool
	closeOnce  sync.Once
	closer     func() error
	closeErr   error
}

// NewRequest builds a PendingRequest with a raw body. A nil body is sent as
// an empty byte sequence.
func NewRequest(method, pathWithQuery string, body []byte) *PendingRequest {
	req := &PendingRequest{
		Method:        method,
		PathWithQuery: pathWithQuery,
		Header:        make(http.Header),
	}
	if len(body) > 0 {
		req.Body = bytes.NewReader(body)
		req.ContentLength = int64(len(body))
	}
	return req
}

// NewJSONRequest marshals v once and uses the resulting bytes both for the
// signature and as the transmitted body.
func NewJSONRequest(method, pathWithQuery string, v any) (*PendingRequest, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s %s body: %w", method, pathWithQuery, err)
	}

	req := NewRequest(method, pathWithQuery, body)
	req.Header.Set(HeaderContentType, "application/json")
	return req, nil
}

// Close releases resources held by the body, such as a spooled multipart
// file. It is safe to call more than once; Dispatch always calls it.
func (r *PendingRequest) Close() error {
	r.closeOnce.Do(func() {
		if r.closer != nil {
			r.closeErr = r.closer()
		}
	})
	return r.closeErr
}

// claim marks the request as dispatched and reports whether it was free.
func (r *PendingRequest) claim() bool {
	return r.dispatched.CompareAndSwap(false, true)
}

// Response is the raw result of a completed HTTP exchange, whatever its
// status code.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the buffered response body. It is nil for streamed requests.
	Body []byte

	// Stream is the unread response body of a streamed request. The caller
	// must close it.
	Stream io.ReadCloser
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Close closes the streamed body, if any.
func (r *Response) Close() error {
	if r.Stream == nil {
		return nil
	}
	return r.Stream.Close()
}
