// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pixivapi"
	"codeberg.org/pixivfe/pixivapi/configs"
)

var (
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "pixiv",
	Short:   "Command-line client for the pixiv app API",
	Version: config.BuildVersion,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Global.LoadConfig(configFlag); err != nil {
			return err
		}

		// The flag outranks every other log level source.
		if logLevelFlag != "" {
			if err := config.Global.ApplyLogLevel(logLevelFlag); err != nil {
				return err
			}
		}

		// Client operations log through the context logger.
		cmd.SetContext(log.Logger.WithContext(cmd.Context()))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
}

// newClient builds an initialized client from the loaded configuration
// and exchanges the stored refresh token when one is present.
func newClient(ctx context.Context) (*pixivapi.Client, error) {
	client := pixivapi.New(config.Global.ClientOptions())

	if err := client.Initialize(ctx); err != nil {
		return nil, err
	}

	if !client.IsAuthenticated() && client.RefreshToken() != "" {
		if err := client.Authenticate(ctx, ""); err != nil {
			return nil, err
		}
	}

	return client, nil
}
