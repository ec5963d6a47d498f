package adapter

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/MKhiriev/go-sumsub-client/models"
)

func statusSentinel(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	default:
		return nil
	}
}

// MapHTTPError returns nil for a 2xx response and an [*APIError] otherwise.
// The dispatch core never calls it: interpreting status codes is left to
// each operation.
func MapHTTPError(op string, resp *Response) error {
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}

	var envelope models.APIErrorBody
	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.ErrorCode = envelope.ErrorCode
		apiErr.ErrorName = envelope.ErrorName
		apiErr.Description = envelope.Description
		apiErr.CorrelationID = envelope.CorrelationID
	}

	if apiErr.Description == "" && len(strings.TrimSpace(string(resp.Body))) == 0 {
		apiErr.Description = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// DecodeJSON unmarshals the buffered response body into v. A malformed body
// is reported as [*DecodingError].
func DecodeJSON(op string, resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &DecodingError{Op: op, StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return nil
}

// classifyTransportError maps a client error to an [ErrorKind].
func classifyTransportError(err error) ErrorKind {
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if isTLSError(err) {
		return KindTLS
	}

	var opErr *net.OpError
	switch {
	case errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return KindConnection
	}

	return KindUnknown
}

func isTLSError(err error) bool {
	var (
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)

	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
