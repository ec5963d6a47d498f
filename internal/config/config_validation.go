// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"crypto/tls"
	"fmt"
	"net/url"
)

// validate checks that the final [ClientConfig] can authenticate against the
// provider before any request is built.
func (cfg *ClientConfig) validate() error {
	if cfg.Credentials.AppToken == "" || cfg.Credentials.SecretKey == "" {
		return ErrInvalidCredentials
	}

	u, err := url.Parse(cfg.Credentials.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: base url must include scheme and host", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.RequestTimeout < 0 || cfg.Adapter.MaxIdleConnsPerHost < 0 || cfg.Adapter.IdleConnTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Adapter.TLSMinVersion {
	case 0, tls.VersionTLS12, tls.VersionTLS13:
	default:
		return fmt.Errorf("%w: unsupported minimum TLS version %#04x", ErrInvalidAdapterConfigs, cfg.Adapter.TLSMinVersion)
	}

	return nil
}

// ParseTLSVersion maps "1.2" and "1.3" to their crypto/tls constants. An
// empty string returns zero, leaving the transport default in place.
func ParseTLSVersion(s string) (uint16, error) {
	switch s {
	case "":
		return 0, nil
	case "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("%w: unsupported minimum TLS version %q", ErrInvalidAdapterConfigs, s)
	}
}
