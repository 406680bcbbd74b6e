// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pixivapi"
)

// t.Setenv forbids t.Parallel, so nothing in this file runs parallel.

func TestLoadConfigPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `request:
  acceptLanguage: ja
  timeout: 45s
downloads:
  directory: incoming
log:
  logLevel: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o600))

	t.Setenv("PIXIV_LOG_LEVEL", "error")
	t.Setenv("PIXIV_TIMEOUT", "5s")
	t.Setenv("PIXIV_REFRESH_TOKEN", "env-token")
	t.Setenv("PIXIV_LOG_OUTPUTS", "/dev/stdout, /dev/stderr")

	cfg := &Config{}
	require.NoError(t, cfg.LoadConfig(configPath))

	// Environment beats YAML.
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, 5*time.Second, cfg.Request.Timeout)
	require.Equal(t, "env-token", cfg.Auth.RefreshToken)
	require.Equal(t, []string{"/dev/stdout", "/dev/stderr"}, cfg.Log.Outputs)

	// YAML beats defaults.
	require.Equal(t, "ja", cfg.Request.AcceptLanguage)
	require.Equal(t, "incoming", cfg.Downloads.Directory)

	// Untouched fields keep their defaults.
	require.Equal(t, pixivapi.DefaultAPIHost, cfg.Request.APIHost)
	require.Equal(t, pixivapi.DefaultUserAgent, cfg.Request.UserAgent)
	require.Equal(t, defaultDownloadConcurrency, cfg.Downloads.Concurrency)
	require.Equal(t, "console", cfg.Log.Format)
	require.False(t, cfg.Development.SaveResponses)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name: "unknown log level",
			env:  map[string]string{"PIXIV_LOG_LEVEL": "verbose"},

			wantErr: "invalid Log.Level value",
		},
		{
			name: "unknown log format",
			env:  map[string]string{"PIXIV_LOG_FORMAT": "xml"},

			wantErr: "invalid Log.Format value",
		},
		{
			name: "malformed language tag",
			env:  map[string]string{"PIXIV_ACCEPTLANGUAGE": "!!!"},

			wantErr: "invalid Request.AcceptLanguage value",
		},
		{
			name: "relative API host",
			env:  map[string]string{"PIXIV_API_HOST": "app-api.pixiv.net"},

			wantErr: "invalid Request.APIHost value",
		},
		{
			name: "negative timeout",
			env:  map[string]string{"PIXIV_TIMEOUT": "-5s"},

			wantErr: "Request.Timeout cannot be negative",
		},
		{
			name: "zero download concurrency",
			env:  map[string]string{"PIXIV_DOWNLOAD_CONCURRENCY": "0"},

			wantErr: "Downloads.Concurrency must be at least 1",
		},
		{
			name: "response saving without a location",
			env: map[string]string{
				"PIXIV_SAVE_RESPONSES":         "true",
				"PIXIV_RESPONSE_SAVE_LOCATION": "",
			},

			wantErr: "Development.ResponseSaveLocation is required",
		},
		{
			name: "weighted language list is accepted",
			env:  map[string]string{"PIXIV_ACCEPTLANGUAGE": "en-US,en;q=0.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &Config{}
			err := cfg.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("PIXIV_CONFIGFILE", "/from-env/config.yaml")

	require.Equal(t, "/explicit/config.yaml", ResolveConfigPath("/explicit/config.yaml"))
	require.Equal(t, "/from-env/config.yaml", ResolveConfigPath(""))
}

func TestResolveConfigPathFallsBackToYml(t *testing.T) {
	t.Setenv("PIXIV_CONFIGFILE", "")

	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	// Nothing on disk: the default .yaml path is reported as is.
	require.Equal(t, defaultConfigPath, ResolveConfigPath(""))

	require.NoError(t, os.WriteFile("config.yml", []byte("log:\n  logLevel: info\n"), 0o600))
	require.Equal(t, "./config.yml", ResolveConfigPath(""))
}

func TestSaveRefreshToken(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveRefreshToken(configPath, "first-token"))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(configFilePermissions), info.Mode().Perm())

	var written Config

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &written))
	require.Equal(t, "first-token", written.Auth.RefreshToken)
}

func TestSaveRefreshTokenPreservesOtherKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	existing := `auth:
  refreshToken: old-token
log:
  logLevel: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(existing), 0o600))

	require.NoError(t, SaveRefreshToken(configPath, "new-token"))

	var written Config

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &written))
	require.Equal(t, "new-token", written.Auth.RefreshToken)
	require.Equal(t, "warn", written.Log.Level)
}

func TestUseDotEnv(t *testing.T) {
	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	dotenv := `# credentials for local testing
PIXIV_REFRESH_TOKEN=dotenv-token
PIXIV_USERAGENT="quoted agent"
PIXIV_LOG_LEVEL=debug
`
	require.NoError(t, os.WriteFile(".env", []byte(dotenv), 0o600))

	t.Setenv("PIXIV_REFRESH_TOKEN", "")
	t.Setenv("PIXIV_USERAGENT", "")
	// Already defined in the environment, so the .env value must lose.
	t.Setenv("PIXIV_LOG_LEVEL", "info")

	require.NoError(t, useDotEnv())

	require.Equal(t, "dotenv-token", os.Getenv("PIXIV_REFRESH_TOKEN"))
	require.Equal(t, "quoted agent", os.Getenv("PIXIV_USERAGENT"))
	require.Equal(t, "info", os.Getenv("PIXIV_LOG_LEVEL"))
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Auth.RefreshToken = "stored-token"
	cfg.Request.AcceptLanguage = "ja"

	opts := cfg.ClientOptions()

	require.Equal(t, "stored-token", opts.RefreshToken)
	require.Equal(t, "ja", opts.Language)
	require.Equal(t, pixivapi.DefaultAPIHost, opts.APIHost)
	require.Equal(t, pixivapi.DefaultAuthHost, opts.AuthHost)
	require.Equal(t, pixivapi.DefaultUserAgent, opts.UserAgent)
	require.Equal(t, defaultRequestTimeoutSeconds*time.Second, opts.Timeout)
}
