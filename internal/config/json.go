package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration.
type StructuredJSONConfig struct {
	App struct {
		AppToken  string `json:"app_token"`
		SecretKey string `json:"secret_key"`
	} `json:"app,omitempty"`

	Adapter struct {
		BaseURL             string   `json:"base_url"`
		RequestTimeout      Duration `json:"request_timeout"`
		MaxIdleConnsPerHost int      `json:"max_idle_conns_per_host"`
		IdleConnTimeout     Duration `json:"idle_conn_timeout"`
		TLSMinVersion       string   `json:"tls_min_version"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AppToken:  jsonCfg.App.AppToken,
			SecretKey: jsonCfg.App.SecretKey,
		},
		Adapter: Adapter{
			BaseURL:             jsonCfg.Adapter.BaseURL,
			RequestTimeout:      time.Duration(jsonCfg.Adapter.RequestTimeout),
			MaxIdleConnsPerHost: jsonCfg.Adapter.MaxIdleConnsPerHost,
			IdleConnTimeout:     time.Duration(jsonCfg.Adapter.IdleConnTimeout),
			TLSMinVersion:       jsonCfg.Adapter.TLSMinVersion,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
