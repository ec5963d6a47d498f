package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-sumsub-client/internal/config"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/metrics"
	"github.com/MKhiriev/go-sumsub-client/internal/utils"
	"github.com/MKhiriev/go-sumsub-client/models"
)

type httpTransport struct {
	client *utils.HTTPClient
	signer *Signer

	appToken string

	now     func() time.Time
	ids     utils.IDGenerator
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// Option customises the transport built by [NewHTTPTransport].
type Option func(*httpTransport)

// WithClock replaces the clock used for X-App-Access-Ts.
func WithClock(now func() time.Time) Option {
	return func(t *httpTransport) { t.now = now }
}

// WithIDGenerator replaces the generator of X-Request-Id values.
func WithIDGenerator(ids utils.IDGenerator) Option {
	return func(t *httpTransport) { t.ids = ids }
}

// WithMetrics records every dispatch in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *httpTransport) { t.metrics = m }
}

// NewHTTPTransport constructs the HTTP implementation of [Transport].
// It normalises and validates creds.BaseURL and configures one pooled HTTP
// client, shared by every dispatch, with the adapter timeout.
//
// Returns an error if the base URL is empty or cannot be parsed as a valid
// URL.
func NewHTTPTransport(creds models.Credentials, adapterCfg config.ClientAdapter, log *logger.Logger, opts ...Option) (Transport, error) {
	baseURL, err := normalizeBaseURL(creds.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	clientOpts := []utils.HTTPClientOption{utils.WithTimeout(adapterCfg.RequestTimeout)}
	if adapterCfg.MaxIdleConnsPerHost > 0 {
		clientOpts = append(clientOpts, utils.WithMaxIdleConnsPerHost(adapterCfg.MaxIdleConnsPerHost))
	}
	if adapterCfg.IdleConnTimeout > 0 {
		clientOpts = append(clientOpts, utils.WithIdleConnTimeout(adapterCfg.IdleConnTimeout))
	}
	if adapterCfg.TLSMinVersion != 0 {
		clientOpts = append(clientOpts, utils.WithTLSMinVersion(adapterCfg.TLSMinVersion))
	}

	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("transport")

	client := utils.NewHTTPClient(clientOpts...)
	client.
		SetBaseURL(baseURL).
		SetLogger(newRestyLogger(log))

	t := &httpTransport{
		client:   client,
		signer:   NewSigner(creds.SecretKey),
		appToken: creds.AppToken,
		now:      time.Now,
		ids:      utils.NewUUIDGenerator(),
		logger:   log,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Dispatch implements [Transport].
func (t *httpTransport) Dispatch(ctx context.Context, req *PendingRequest) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	defer req.Close()

	if !req.claim() {
		return nil, ErrRequestReused
	}
	if !strings.HasPrefix(req.PathWithQuery, "/") {
		return nil, fmt.Errorf("path %q must start with '/'", req.PathWithQuery)
	}

	method := strings.ToUpper(req.Method)
	path := pathOnly(req.PathWithQuery)

	// One timestamp per attempt, shared by the signature and the header.
	ts := t.now().Unix()
	signature, err := t.signer.SignReader(ts, method, req.PathWithQuery, req.Body)
	if err != nil {
		return nil, &TransportError{Kind: KindBody, Method: method, Path: path, Err: err}
	}

	requestID := t.ids.Generate()
	ctx = utils.WithRequestID(ctx, requestID)

	r := t.client.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header).
		SetHeader(HeaderAppToken, t.appToken).
		SetHeader(HeaderAccessSig, signature).
		SetHeader(HeaderAccessTs, strconv.FormatInt(ts, 10)).
		SetHeader(HeaderRequestID, requestID).
		SetDoNotParseResponse(req.Stream)

	if req.Body != nil {
		if req.ContentLength >= 0 {
			r.SetContext(utils.WithContentLength(ctx, req.ContentLength))
		}
		r.SetBody(req.Body)
	}

	log := t.logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()

	start := time.Now()
	resp, err := r.Execute(method, req.PathWithQuery)
	elapsed := time.Since(start)

	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			_ = resp.RawBody().Close()
		}
		kind := classifyTransportError(err)
		t.metrics.IncrementTransportError(method, string(kind), elapsed)
		log.Warn().Err(err).Str("kind", string(kind)).Dur("duration", elapsed).Msg("request failed")

		return nil, &TransportError{Kind: kind, Method: method, Path: path, Err: err}
	}

	t.metrics.ObserveRequest(method, resp.StatusCode(), elapsed)
	log.Debug().Int("status", resp.StatusCode()).Dur("duration", elapsed).Msg("request completed")

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
	}
	if req.Stream {
		out.Stream = resp.RawBody()
	} else {
		out.Body = resp.Body()
	}

	return out, nil
}

// pathOnly strips the query, which may carry user identifiers, for logging.
func pathOnly(pathWithQuery string) string {
	if i := strings.IndexByte(pathWithQuery, '?'); i >= 0 {
		return pathWithQuery[:i]
	}
	return pathWithQuery
}

type restyLogger struct {
	log *logger.Logger
}

func newRestyLogger(log *logger.Logger) *restyLogger {
	return &restyLogger{log: log}
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
