// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the cmd/pixiv configuration from a YAML file, a
// .env file and PIXIV_* environment variables, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"codeberg.org/pixivfe/pixivapi"
)

// Global exposes the CLI configuration.
var Global Config

const defaultConfigPath = "./config.yaml"

// Config holds everything cmd/pixiv needs to build a client and place
// downloads.
type Config struct {
	Build buildInfo `yaml:"-"`

	Auth struct {
		RefreshToken string `env:"PIXIV_REFRESH_TOKEN,overwrite" yaml:"refreshToken"`
	} `yaml:"auth"`

	Request struct {
		APIHost        string        `env:"PIXIV_API_HOST,overwrite" yaml:"apiHost"`
		AuthHost       string        `env:"PIXIV_AUTH_HOST,overwrite" yaml:"authHost"`
		AcceptLanguage string        `env:"PIXIV_ACCEPTLANGUAGE,overwrite" yaml:"acceptLanguage"`
		UserAgent      string        `env:"PIXIV_USERAGENT,overwrite" yaml:"userAgent"`
		Timeout        time.Duration `env:"PIXIV_TIMEOUT,overwrite" yaml:"timeout"`
	} `yaml:"request"`

	Downloads struct {
		Directory    string `env:"PIXIV_DOWNLOAD_DIRECTORY,overwrite" yaml:"directory"`
		SkipExisting bool   `env:"PIXIV_DOWNLOAD_SKIP_EXISTING,overwrite" yaml:"skipExisting"`
		Concurrency  int    `env:"PIXIV_DOWNLOAD_CONCURRENCY,overwrite" yaml:"concurrency"`
	} `yaml:"downloads"`

	Development struct {
		SaveResponses        bool   `env:"PIXIV_SAVE_RESPONSES,overwrite" yaml:"saveResponses"`
		ResponseSaveLocation string `env:"PIXIV_RESPONSE_SAVE_LOCATION,overwrite" yaml:"responseSaveLocation"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"PIXIV_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"PIXIV_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"PIXIV_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
//
// configFlagValue is the --config flag as given on the command line;
// when empty the path falls back to PIXIV_CONFIGFILE and then
// ./config.yaml.
func (cfg *Config) LoadConfig(configFlagValue string) error {
	configFilePath := ResolveConfigPath(configFlagValue)

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if err := cfg.setupAudit(); err != nil {
		return fmt.Errorf("error setting up logging: %w", err)
	}

	cfg.print()

	return nil
}

// ResolveConfigPath determines the config file path with the correct
// precedence:
//  1. Command-line flag (--config)
//  2. Environment variable (PIXIV_CONFIGFILE)
//  3. Default path, falling back to ./config.yml when only that exists
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envVar := os.Getenv("PIXIV_CONFIGFILE"); envVar != "" {
		return envVar
	}

	configFilePath := defaultConfigPath
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		ymlPath := "./config.yml"
		if _, statErr := os.Stat(ymlPath); statErr == nil {
			configFilePath = ymlPath
		}
	}

	return configFilePath
}

// ApplyLogLevel overrides the configured log level, for the
// command-line flag that outranks every other source.
func (cfg *Config) ApplyLogLevel(level string) error {
	cfg.Log.Level = level

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	setGlobalLevel(level)

	return nil
}

// ClientOptions maps the configuration onto client options.
func (cfg *Config) ClientOptions() pixivapi.Options {
	return pixivapi.Options{
		RefreshToken: cfg.Auth.RefreshToken,
		Language:     cfg.Request.AcceptLanguage,
		APIHost:      cfg.Request.APIHost,
		AuthHost:     cfg.Request.AuthHost,
		UserAgent:    cfg.Request.UserAgent,
		Timeout:      cfg.Request.Timeout,
	}
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30s", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
