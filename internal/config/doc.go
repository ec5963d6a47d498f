// Package config provides configuration loading, merging, and validation
// for the verification client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables prefixed with SUMSUB_ (seeded from .env)
//  2. JSON config file (SUMSUB_CONFIG)
//  3. INI credentials profile (SUMSUB_PROFILE_FILE, SUMSUB_PROFILE)
//
// The main entry point is [GetClientConfig]. The returned credentials are
// loaded once and treated as immutable by the rest of the library.
package config
