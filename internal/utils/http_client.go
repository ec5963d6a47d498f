package utils

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(10 * time.Second))
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption customises the client built by NewHTTPClient.
type HTTPClientOption func(*httpClientOptions)

type httpClientOptions struct {
	timeout             time.Duration
	maxIdleConnsPerHost int
	idleConnTimeout     time.Duration
	tlsMinVersion       uint16
}

// WithTimeout bounds every request, including reading the response body.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(o *httpClientOptions) { o.timeout = d }
}

// WithMaxIdleConnsPerHost sets the size of the keep-alive pool per host.
func WithMaxIdleConnsPerHost(n int) HTTPClientOption {
	return func(o *httpClientOptions) { o.maxIdleConnsPerHost = n }
}

// WithIdleConnTimeout sets how long idle keep-alive connections are kept.
func WithIdleConnTimeout(d time.Duration) HTTPClientOption {
	return func(o *httpClientOptions) { o.idleConnTimeout = d }
}

// WithTLSMinVersion sets the minimum accepted TLS version.
func WithTLSMinVersion(v uint16) HTTPClientOption {
	return func(o *httpClientOptions) { o.tlsMinVersion = v }
}

// NewHTTPClient creates and returns a new HTTPClient instance backed by its
// own pooled transport.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state. Automatic retries are disabled:
// a request body may not be re-readable after one send.
//
// A pre-request hook copies the body length stored with [WithContentLength]
// onto the outgoing request, so streamed bodies are not sent chunked.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	o := httpClientOptions{
		maxIdleConnsPerHost: 16,
		idleConnTimeout:     90 * time.Second,
		tlsMinVersion:       tls.VersionTLS12,
	}
	for _, opt := range opts {
		opt(&o)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = o.maxIdleConnsPerHost
	transport.IdleConnTimeout = o.idleConnTimeout
	transport.TLSClientConfig = &tls.Config{MinVersion: o.tlsMinVersion}

	client := resty.New().
		SetTransport(transport).
		SetRetryCount(0).
		SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			if n, ok := GetContentLengthFromContext(req.Context()); ok && req.Body != nil {
				req.ContentLength = n
			}
			return nil
		})

	if o.timeout > 0 {
		client.SetTimeout(o.timeout)
	}

	return &HTTPClient{Client: client}
}
