package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withDotEnv() *configBuilder {
	if err := loadDotEnv(); err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	jsonPath := b.lookup(func(cfg *StructuredConfig) string { return cfg.JSONFilePath })
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withProfile() *configBuilder {
	profilePath := b.lookup(func(cfg *StructuredConfig) string { return cfg.ProfileFilePath })
	if profilePath == "" {
		return b
	}

	profile := b.lookup(func(cfg *StructuredConfig) string { return cfg.Profile })
	if profile == "" {
		profile = DefaultProfile
	}

	iniCfg, err := parseProfile(profilePath, profile)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, iniCfg)

	return b
}

// lookup returns the last non-empty value of field across loaded configs.
func (b *configBuilder) lookup(field func(*StructuredConfig) string) string {
	var v string
	for _, cfg := range b.configs {
		if s := field(cfg); s != "" {
			v = s
		}
	}
	return v
}
