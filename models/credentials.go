// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/rs/zerolog"

// Credentials identifies the application against the verification provider.
// A Credentials value is loaded once at startup and passed by value to the
// transport; nothing in the client mutates it afterwards.
type Credentials struct {
	// AppToken is sent verbatim in the X-App-Token header.
	AppToken string

	// SecretKey keys the HMAC-SHA256 request signature. It never leaves the
	// process and is never logged.
	SecretKey string

	// BaseURL is the scheme and host of the provider API
	// (e.g. "https://api.sumsub.com"), without a trailing slash.
	BaseURL string
}

// String implements fmt.Stringer with the secret redacted.
func (c Credentials) String() string {
	secret := ""
	if c.SecretKey != "" {
		secret = "****"
	}
	return "Credentials{AppToken:" + redact(c.AppToken) + ", SecretKey:" + secret + ", BaseURL:" + c.BaseURL + "}"
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler so that
// credentials can be attached to log events without leaking secrets.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("app_token", redact(c.AppToken)).
		Bool("secret_key_set", c.SecretKey != "").
		Str("base_url", c.BaseURL)
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
