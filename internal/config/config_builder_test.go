package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs override earlier ones while zero fields are kept.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:     App{AppToken: "env-token", SecretKey: "env-secret"},
			Adapter: Adapter{RequestTimeout: 5 * time.Second},
		},
		&StructuredConfig{
			App: App{SecretKey: "json-secret"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.App.AppToken)
	assert.Equal(t, "json-secret", cfg.App.SecretKey)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
}

// ── withJSON / withProfile ────────────────────────────────────────────────────

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"app_token": "json-token"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-token", b.configs[1].App.AppToken)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "nope.json")})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithProfile_DefaultSection(t *testing.T) {
	path := writeTempFile(t, "credentials", "[default]\napp_token = ini-token\nsecret_key = ini-secret\n")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ProfileFilePath: path})
	b.withProfile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "ini-token", b.configs[1].App.AppToken)
	assert.Equal(t, "ini-secret", b.configs[1].App.SecretKey)
}

func TestWithProfile_UnknownSection(t *testing.T) {
	path := writeTempFile(t, "credentials", "[default]\napp_token = x\n")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ProfileFilePath: path, Profile: "staging"})
	b.withProfile()

	assert.ErrorIs(t, b.err, ErrProfileNotFound)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUMSUB_APP_TOKEN", "tok")
	t.Setenv("SUMSUB_SECRET_KEY", "sec")
	t.Setenv("SUMSUB_BASE_URL", "https://api.example.test")
	t.Setenv("SUMSUB_REQUEST_TIMEOUT", "7s")

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Credentials.AppToken)
	assert.Equal(t, "sec", cfg.Credentials.SecretKey)
	assert.Equal(t, "https://api.example.test", cfg.Credentials.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUMSUB_APP_TOKEN", "tok")
	t.Setenv("SUMSUB_SECRET_KEY", "sec")

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Credentials.BaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

func TestGetClientConfig_ProfileOverridesEnvAndJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"app_token": "json-token", "secret_key": "json-secret"},
		"adapter": map[string]any{"request_timeout": "12s"},
	})
	iniPath := writeTempFile(t, "credentials", "[prod]\nsecret_key = ini-secret\n")

	t.Setenv("SUMSUB_APP_TOKEN", "env-token")
	t.Setenv("SUMSUB_CONFIG", jsonPath)
	t.Setenv("SUMSUB_PROFILE_FILE", iniPath)
	t.Setenv("SUMSUB_PROFILE", "prod")

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.Credentials.AppToken)
	assert.Equal(t, "ini-secret", cfg.Credentials.SecretKey)
	assert.Equal(t, 12*time.Second, cfg.Adapter.RequestTimeout)
}

func TestGetClientConfig_DotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeTempFile(t, "sumsub.env", "SUMSUB_APP_TOKEN=dot-token\nSUMSUB_SECRET_KEY=dot-secret\n")
	t.Setenv("SUMSUB_DOTENV", path)
	// godotenv never overrides variables that are already set.
	t.Setenv("SUMSUB_APP_TOKEN", "env-token")
	t.Cleanup(func() { os.Unsetenv("SUMSUB_SECRET_KEY") })

	cfg, err := GetClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Credentials.AppToken)
	assert.Equal(t, "dot-secret", cfg.Credentials.SecretKey)
}

func TestGetClientConfig_MissingCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUMSUB_APP_TOKEN", "")
	t.Setenv("SUMSUB_SECRET_KEY", "")

	_, err := GetClientConfig()
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
