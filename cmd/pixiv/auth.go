// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pixivapi"
	"codeberg.org/pixivfe/pixivapi/configs"
)

var errNoAuthorizationCode = errors.New("no authorization code entered")

var saveToken bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage pixiv credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through the browser PKCE flow",
	Long: `Prints the pixiv login URL, waits for the authorization code handed
over at the end of the browser flow and exchanges it for tokens.`,
	RunE: runAuthLogin,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh [refresh-token]",
	Short: "Exchange a refresh token for fresh credentials",
	Long: `Exchanges the given refresh token, or the configured one when the
argument is omitted, for a fresh token pair.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthRefresh,
}

func init() {
	authCmd.PersistentFlags().BoolVar(&saveToken, "save", false, "store the refresh token in the configuration file")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRefreshCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client := pixivapi.New(config.Global.ClientOptions())
	if err := client.Initialize(ctx); err != nil {
		return err
	}
	defer client.Shutdown()

	loginURL, codeVerifier, err := client.LoginURL()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Open this URL in a browser and log in:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  "+loginURL)
	fmt.Fprintln(out)
	fmt.Fprintln(out, `After logging in, copy the "code" parameter from the callback URL.`)
	fmt.Fprint(out, "Authorization code: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}

		return errNoAuthorizationCode
	}

	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return errNoAuthorizationCode
	}

	if err := client.AuthenticateCode(ctx, code, codeVerifier); err != nil {
		return err
	}

	return reportTokens(cmd, client)
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client := pixivapi.New(config.Global.ClientOptions())
	if err := client.Initialize(ctx); err != nil {
		return err
	}
	defer client.Shutdown()

	refreshToken := ""
	if len(args) == 1 {
		refreshToken = args[0]
	}

	if err := client.Authenticate(ctx, refreshToken); err != nil {
		return err
	}

	return reportTokens(cmd, client)
}

// reportTokens prints the credential set and optionally stores the
// refresh token in the configuration file.
func reportTokens(cmd *cobra.Command, client *pixivapi.Client) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "access_token:  %s\n", client.AccessToken())
	fmt.Fprintf(out, "refresh_token: %s\n", client.RefreshToken())
	fmt.Fprintf(out, "expires_in:    %d\n", client.ExpiresIn())

	if user, err := client.AuthenticatedUser(cmd.Context()); err == nil {
		fmt.Fprintf(out, "logged in as:  %s (@%s)\n", user.Name, user.Account)
	}

	if !saveToken {
		return nil
	}

	configPath := config.ResolveConfigPath(configFlag)
	if err := config.SaveRefreshToken(configPath, client.RefreshToken()); err != nil {
		return err
	}

	fmt.Fprintln(out, "Refresh token stored in "+configPath)

	return nil
}
