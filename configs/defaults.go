// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"time"

	"codeberg.org/pixivfe/pixivapi"
)

const (
	// Default end-to-end timeout for one HTTP exchange, in seconds.
	defaultRequestTimeoutSeconds = 30

	// Default number of works fetched and downloaded at once.
	defaultDownloadConcurrency = 4
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Request.APIHost = pixivapi.DefaultAPIHost
	cfg.Request.AuthHost = pixivapi.DefaultAuthHost
	cfg.Request.AcceptLanguage = pixivapi.DefaultLanguage
	cfg.Request.UserAgent = pixivapi.DefaultUserAgent
	cfg.Request.Timeout = defaultRequestTimeoutSeconds * time.Second

	cfg.Downloads.Directory = "."
	cfg.Downloads.SkipExisting = false
	cfg.Downloads.Concurrency = defaultDownloadConcurrency

	cfg.Development.SaveResponses = false
	cfg.Development.ResponseSaveLocation = "/tmp/pixivapi/responses"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
