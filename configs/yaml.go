// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// configFilePermissions restricts the rewritten file to the owner since
// it carries the refresh token.
const configFilePermissions = 0o600

func (cfg *Config) readYAML(configFilePath string) error {
	if configFilePath == "" {
		return nil
	}

	_, err := os.Stat(configFilePath)
	if os.IsNotExist(err) {
		log.Info().
			Str("path", configFilePath).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	yamlCfg, err := os.ReadFile(configFilePath) // #nosec G304 -- Only loading a config file
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(yamlCfg, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", configFilePath, err)
	}

	log.Info().
		Str("path", configFilePath).
		Msg("Successfully loaded configuration")

	return nil
}

// SaveRefreshToken writes refreshToken into the auth block of the YAML
// file at configFilePath, preserving everything else in the file. The
// file is created when missing.
func SaveRefreshToken(configFilePath, refreshToken string) error {
	document := map[string]any{}

	data, err := os.ReadFile(configFilePath) // #nosec G304 -- Only rewriting a config file
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("failed to parse YAML from %s: %w", configFilePath, err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}

	auth, ok := document["auth"].(map[string]any)
	if !ok {
		auth = map[string]any{}
	}

	auth["refreshToken"] = refreshToken
	document["auth"] = auth

	rewritten, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration for %s: %w", configFilePath, err)
	}

	if err := os.WriteFile(configFilePath, rewritten, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write configuration file %s: %w", configFilePath, err)
	}

	log.Info().
		Str("path", configFilePath).
		Msg("Stored refresh token")

	return nil
}
