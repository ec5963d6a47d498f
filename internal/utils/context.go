// Package utils provides general-purpose helper utilities
// used across different parts of the client.
// Includes tools for working with context, type-safe keys, keyed hashing,
// HTTP client initialization and request id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestIDCtxKey stores the id of the outbound request being dispatched.
	RequestIDCtxKey = contextKey("requestID")

	// ContentLengthCtxKey stores the exact length of a streamed request body,
	// so the pre-request hook can set it on the outgoing *http.Request.
	ContentLengthCtxKey = contextKey("contentLength")
)

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext retrieves the request id from the context.
//
// Returns ok == false if the value is missing or has an unexpected type.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok
}

// WithContentLength returns a copy of ctx carrying the body length n.
func WithContentLength(ctx context.Context, n int64) context.Context {
	return context.WithValue(ctx, ContentLengthCtxKey, n)
}

// GetContentLengthFromContext retrieves the body length stored by
// WithContentLength.
func GetContentLengthFromContext(ctx context.Context) (int64, bool) {
	n, ok := ctx.Value(ContentLengthCtxKey).(int64)
	return n, ok
}
