package client

import (
	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/config"
	"github.com/MKhiriev/go-sumsub-client/internal/service"
)

// Errors returned by provider responses, matched with errors.Is by HTTP
// status code.
var (
	ErrBadRequest          = adapter.ErrBadRequest
	ErrUnauthorized        = adapter.ErrUnauthorized
	ErrForbidden           = adapter.ErrForbidden
	ErrNotFound            = adapter.ErrNotFound
	ErrConflict            = adapter.ErrConflict
	ErrTooManyRequests     = adapter.ErrTooManyRequests
	ErrInternalServerError = adapter.ErrInternalServerError
	ErrBadGateway          = adapter.ErrBadGateway
)

var (
	// ErrInvalidPayload is returned when input fails validation; nothing is
	// sent in that case.
	ErrInvalidPayload = service.ErrInvalidPayload

	ErrInvalidCredentials    = config.ErrInvalidCredentials
	ErrInvalidAdapterConfigs = config.ErrInvalidAdapterConfigs
)

type (
	// APIError is a non-2xx provider response.
	APIError = adapter.APIError

	// TransportError is a request that never completed an HTTP exchange.
	TransportError = adapter.TransportError

	// DecodingError is a response body that is not the expected JSON.
	DecodingError = adapter.DecodingError

	// ErrorKind classifies a TransportError.
	ErrorKind = adapter.ErrorKind
)

// Transport error kinds.
const (
	KindTimeout    = adapter.KindTimeout
	KindCanceled   = adapter.KindCanceled
	KindDNS        = adapter.KindDNS
	KindTLS        = adapter.KindTLS
	KindConnection = adapter.KindConnection
	KindBody       = adapter.KindBody
	KindUnknown    = adapter.KindUnknown
)
