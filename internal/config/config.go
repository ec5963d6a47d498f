// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-sumsub-client/models"
)

// EnvPrefix is prepended to every environment variable read by the package.
const EnvPrefix = "SUMSUB_"

// StructuredConfig is the raw configuration container. It is populated from
// environment variables, an optional JSON file and an optional INI
// credentials profile, then merged.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the provider credentials.
	App App

	// Adapter holds the transport settings for the provider API.
	Adapter Adapter

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: SUMSUB_CONFIG
	JSONFilePath string `env:"CONFIG"`

	// ProfileFilePath is the optional path to an INI credentials file with
	// one section per profile.
	// Env: SUMSUB_PROFILE_FILE
	ProfileFilePath string `env:"PROFILE_FILE"`

	// Profile selects the INI section. Defaults to "default".
	// Env: SUMSUB_PROFILE
	Profile string `env:"PROFILE"`

	// DotEnvPath is the optional path to a .env file loaded into the process
	// environment before variables are parsed. Variables already set in the
	// environment take precedence over the file.
	// Env: SUMSUB_DOTENV
	DotEnvPath string `env:"DOTENV"`
}

// App holds the credentials issued by the verification provider.
type App struct {
	// AppToken is the application token sent in X-App-Token.
	// Env: SUMSUB_APP_TOKEN
	AppToken string `env:"APP_TOKEN"`

	// SecretKey keys the request signature. Must be kept confidential.
	// Env: SUMSUB_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
}

// Adapter holds network settings of the outbound transport.
type Adapter struct {
	// BaseURL is the provider API endpoint (e.g. "https://api.sumsub.com").
	// Env: SUMSUB_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single request, including reading the
	// response body (e.g. "30s", "1m").
	// Env: SUMSUB_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxIdleConnsPerHost sizes the keep-alive connection pool.
	// Env: SUMSUB_MAX_IDLE_CONNS_PER_HOST
	MaxIdleConnsPerHost int `env:"MAX_IDLE_CONNS_PER_HOST"`

	// IdleConnTimeout is how long an idle keep-alive connection is kept.
	// Env: SUMSUB_IDLE_CONN_TIMEOUT
	IdleConnTimeout time.Duration `env:"IDLE_CONN_TIMEOUT"`

	// TLSMinVersion is the lowest accepted TLS version, "1.2" or "1.3".
	// Env: SUMSUB_TLS_MIN_VERSION
	TLSMinVersion string `env:"TLS_MIN_VERSION"`
}

// ClientAdapter holds the transport settings handed to the adapter.
type ClientAdapter struct {
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
	// MaxIdleConnsPerHost sizes the keep-alive pool; zero keeps the default.
	MaxIdleConnsPerHost int
	// IdleConnTimeout bounds idle keep-alive connections; zero keeps the default.
	IdleConnTimeout time.Duration
	// TLSMinVersion is a crypto/tls version constant; zero selects TLS 1.2.
	TLSMinVersion uint16
}

// ClientConfig is the validated, immutable configuration of the client.
type ClientConfig struct {
	// Credentials identify the application against the provider.
	Credentials models.Credentials
	// Adapter contains transport timeouts and pool sizes.
	Adapter ClientAdapter
}

// Defaults applied when no source sets a value.
const (
	DefaultBaseURL        = "https://api.sumsub.com"
	DefaultRequestTimeout = 30 * time.Second
	DefaultProfile        = "default"
)

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (later sources override earlier
// non-zero fields):
//  1. Environment variables (optionally seeded from a .env file)
//  2. JSON file (path resolved from source 1)
//  3. INI credentials profile (path resolved from source 1)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withJSON().
		withProfile().
		build()
}

// GetClientConfig builds and validates the client configuration from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return cfg.ClientConfig()
}

// ClientConfig maps the structured configuration onto a [ClientConfig],
// applies defaults and validates the result.
func (cfg *StructuredConfig) ClientConfig() (*ClientConfig, error) {
	tlsVersion, err := ParseTLSVersion(cfg.Adapter.TLSMinVersion)
	if err != nil {
		return nil, err
	}

	return NewClientConfig(
		models.Credentials{
			AppToken:  cfg.App.AppToken,
			SecretKey: cfg.App.SecretKey,
			BaseURL:   cfg.Adapter.BaseURL,
		},
		ClientAdapter{
			RequestTimeout:      cfg.Adapter.RequestTimeout,
			MaxIdleConnsPerHost: cfg.Adapter.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.Adapter.IdleConnTimeout,
			TLSMinVersion:       tlsVersion,
		},
	)
}

// NewClientConfig applies defaults to explicitly supplied settings and
// validates the result.
func NewClientConfig(creds models.Credentials, adapter ClientAdapter) (*ClientConfig, error) {
	clientCfg := &ClientConfig{Credentials: creds, Adapter: adapter}

	if clientCfg.Credentials.BaseURL == "" {
		clientCfg.Credentials.BaseURL = DefaultBaseURL
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}
