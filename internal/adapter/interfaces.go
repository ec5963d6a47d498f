// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the signed transport to the verification
// provider.
//
// The primary abstraction is [Transport]. Its HTTP implementation
// ([NewHTTPTransport]) stamps every [PendingRequest] with the provider's
// authentication headers, signing the exact method, path, query and body
// bytes that go on the wire, and sends it through one pooled resty client.
//
// Dispatch reports only transport faults as errors ([*TransportError]); any
// completed exchange is returned as a [*Response] regardless of status.
// [MapHTTPError] and [DecodeJSON] help operations turn a Response into
// typed results, [*APIError] and [*DecodingError].
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport sends authenticated requests to the provider. Implementations
// must be safe for concurrent use.
type Transport interface {
	// Dispatch signs req, sends it exactly once and returns the raw
	// response for any completed HTTP exchange, including non-2xx ones.
	// It fails with [*TransportError] when no response was received.
	// req is closed before Dispatch returns.
	Dispatch(ctx context.Context, req *PendingRequest) (*Response, error)
}
