// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errInvalidLogLevel          = errors.New("invalid Log.Level value")
	errInvalidLogFormat         = errors.New("invalid Log.Format value")
	errNegativeTimeout          = errors.New("Request.Timeout cannot be negative")
	errEmptyDownloadDirectory   = errors.New("Downloads.Directory cannot be empty")
	errInvalidConcurrency       = errors.New("Downloads.Concurrency must be at least 1")
	errResponseLocationRequired = errors.New("Development.ResponseSaveLocation is required when saveResponses is enabled")
)

// validate checks the configuration for values the client cannot work
// with. Every error names the offending field.
func (cfg *Config) validate() error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if err := validateHostURL(cfg.Request.APIHost, "Request.APIHost"); err != nil {
		return err
	}

	if err := validateHostURL(cfg.Request.AuthHost, "Request.AuthHost"); err != nil {
		return err
	}

	if err := validateAcceptLanguage(cfg.Request.AcceptLanguage); err != nil {
		return err
	}

	if cfg.Request.Timeout < 0 {
		return errNegativeTimeout
	}

	if cfg.Downloads.Directory == "" {
		return errEmptyDownloadDirectory
	}

	if cfg.Downloads.Concurrency < 1 {
		return errInvalidConcurrency
	}

	if cfg.Development.SaveResponses && cfg.Development.ResponseSaveLocation == "" {
		return errResponseLocationRequired
	}

	return nil
}

// validateHostURL requires an absolute http(s) URL.
func validateHostURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", fieldName, rawURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid %s value %q: expected an absolute http(s) URL", fieldName, rawURL)
	}

	return nil
}

// validateAcceptLanguage checks every tag in an Accept-Language value.
// Quality weights are allowed and ignored; a bare "*" is always valid.
func validateAcceptLanguage(value string) error {
	for _, entry := range strings.Split(value, ",") {
		tagValue, _, _ := strings.Cut(strings.TrimSpace(entry), ";")

		tagValue = strings.TrimSpace(tagValue)
		if tagValue == "" || tagValue == "*" {
			continue
		}

		if _, err := language.Parse(tagValue); err != nil {
			return fmt.Errorf("invalid Request.AcceptLanguage value %q: %w", value, err)
		}
	}

	return nil
}
