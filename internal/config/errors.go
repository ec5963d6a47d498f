package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidCredentials indicates a missing app token or secret key.
	ErrInvalidCredentials = errors.New("invalid credentials configuration")
	// ErrInvalidAdapterConfigs indicates invalid transport settings
	// (for example, a malformed base URL or a negative timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrProfileNotFound indicates that the requested INI profile section
	// does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)
