package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
)

// maxErrorBody bounds how much of a failed streamed response is read to
// build its APIError.
const maxErrorBody = 64 << 10

// call dispatches req and turns a non-2xx status into an [*adapter.APIError].
// When out is non-nil the body is decoded into it.
func call(ctx context.Context, transport adapter.Transport, op string, req *adapter.PendingRequest, out any) (*adapter.Response, error) {
	resp, err := transport.Dispatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = adapter.MapHTTPError(op, resp); err != nil {
		return resp, err
	}

	if out != nil {
		if err = adapter.DecodeJSON(op, resp, out); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

// callStream dispatches a streamed request. On success the caller owns
// resp.Stream; on a non-2xx status the body is drained into the APIError and
// closed, and a failed drain is joined to the returned error.
func callStream(ctx context.Context, transport adapter.Transport, op string, req *adapter.PendingRequest) (*adapter.Response, error) {
	req.Stream = true

	resp, err := transport.Dispatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.IsSuccess() {
		return resp, nil
	}

	var drainErr error
	if resp.Stream != nil {
		body, err := io.ReadAll(io.LimitReader(resp.Stream, maxErrorBody))
		if err != nil {
			path, _, _ := strings.Cut(req.PathWithQuery, "?")
			drainErr = &adapter.TransportError{Kind: adapter.KindBody, Method: strings.ToUpper(req.Method), Path: path, Err: err}
		}
		if err := resp.Close(); err != nil {
			drainErr = errors.Join(drainErr, fmt.Errorf("close response body: %w", err))
		}
		resp.Body = body
		resp.Stream = nil
	}

	apiErr := adapter.MapHTTPError(op, resp)
	if drainErr != nil {
		return nil, errors.Join(apiErr, drainErr)
	}
	return nil, apiErr
}

// resourcePath joins escaped path segments under "/resources".
func resourcePath(segments ...string) string {
	var b strings.Builder
	b.WriteString("/resources")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

// withQuery appends key/value pairs to path in the given order. Empty values
// are skipped.
func withQuery(path string, pairs ...string) string {
	var b strings.Builder
	b.WriteString(path)

	sep := byte('?')
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(url.QueryEscape(pairs[i]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pairs[i+1]))
		sep = '&'
	}
	return b.String()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
}

func requireNonEmpty(value string, err error) error {
	if strings.TrimSpace(value) == "" {
		return invalid(err)
	}
	return nil
}
