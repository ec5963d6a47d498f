package client

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/config"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/metrics"
	"github.com/MKhiriev/go-sumsub-client/internal/service"
	"github.com/MKhiriev/go-sumsub-client/internal/validators"
	"github.com/MKhiriev/go-sumsub-client/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Client exposes every provider operation. It is safe for concurrent use
// and holds one pooled HTTP connection set for its lifetime.
type Client struct {
	service.ApplicantService
	service.DocumentService
	service.SDKService
}

// Option customises a Client built by [New].
type Option func(*options)

type options struct {
	adapter  config.ClientAdapter
	logger   *logger.Logger
	registry prometheus.Registerer
	clock    func() time.Time
}

// WithTimeout bounds every request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.adapter.RequestTimeout = d }
}

// WithMaxIdleConnsPerHost sizes the keep-alive connection pool.
func WithMaxIdleConnsPerHost(n int) Option {
	return func(o *options) { o.adapter.MaxIdleConnsPerHost = n }
}

// WithTLSMinVersion sets the lowest accepted TLS version, either
// tls.VersionTLS12 (the default) or tls.VersionTLS13.
func WithTLSMinVersion(v uint16) Option {
	return func(o *options) { o.adapter.TLSMinVersion = v }
}

// WithLogger routes client logs to l. Logs are discarded by default.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger.Logger{Logger: l} }
}

// WithMetrics registers request metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// withClock pins the signing clock in tests.
func withClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// New builds a Client for creds. An empty BaseURL selects the production
// endpoint.
func New(creds models.Credentials, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.NewClientConfig(creds, o.adapter)
	if err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return newClient(cfg, o)
}

// NewFromEnv builds a Client from SUMSUB_* environment variables, an
// optional .env file, JSON file and INI credentials profile.
func NewFromEnv(opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}
	if o.adapter.RequestTimeout > 0 {
		cfg.Adapter.RequestTimeout = o.adapter.RequestTimeout
	}
	if o.adapter.MaxIdleConnsPerHost > 0 {
		cfg.Adapter.MaxIdleConnsPerHost = o.adapter.MaxIdleConnsPerHost
	}
	if o.adapter.TLSMinVersion != 0 {
		cfg.Adapter.TLSMinVersion = o.adapter.TLSMinVersion
	}

	cfg, err = config.NewClientConfig(cfg.Credentials, cfg.Adapter)
	if err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return newClient(cfg, o)
}

func newClient(cfg *config.ClientConfig, o options) (*Client, error) {
	log := o.logger
	if log == nil {
		log = logger.Nop()
	}

	var transportOpts []adapter.Option
	if o.registry != nil {
		transportOpts = append(transportOpts, adapter.WithMetrics(metrics.New(o.registry)))
	}
	if o.clock != nil {
		transportOpts = append(transportOpts, adapter.WithClock(o.clock))
	}

	transport, err := adapter.NewHTTPTransport(cfg.Credentials, cfg.Adapter, log, transportOpts...)
	if err != nil {
		return nil, fmt.Errorf("create transport: %w", err)
	}

	log.Debug().Object("credentials", cfg.Credentials).Dur("timeout", cfg.Adapter.RequestTimeout).Msg("client configured")

	services := service.NewServices(transport, validators.NewPayloadValidator(), log)

	return &Client{
		ApplicantService: services.ApplicantService,
		DocumentService:  services.DocumentService,
		SDKService:       services.SDKService,
	}, nil
}
