package config

import (
	"fmt"

	"github.com/go-ini/ini"
)

// parseProfile reads the credentials of one profile from an INI file:
//
//	[default]
//	app_token  = ...
//	secret_key = ...
//	base_url   = https://api.sumsub.com
//
// Only credentials and the base URL can be set per profile.
func parseProfile(path, profile string) (*StructuredConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile file: %w", err)
	}

	section, err := file.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, profile)
	}

	return &StructuredConfig{
		App: App{
			AppToken:  section.Key("app_token").String(),
			SecretKey: section.Key("secret_key").String(),
		},
		Adapter: Adapter{
			BaseURL: section.Key("base_url").String(),
		},
	}, nil
}
