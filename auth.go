// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"crypto/md5" //#nosec:G501 - pixiv's client hash is defined over MD5
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pixivapi/requests"
)

const (
	// clientTimeFormat renders the UTC wall clock the way the auth
	// endpoint expects it signed.
	clientTimeFormat = "2006-01-02T15:04:05+00:00"

	codeVerifierLength = 32
)

var (
	errMissingRefreshToken = errors.New(
		"either the refreshToken argument or the client refresh token must be set")
	errMissingAuthorizationCode = errors.New("both the authorization code and the code verifier must be set")
	errAuthenticationShape      = errors.New("authentication payload has missing or malformed fields")
)

// Authentication is the token payload of a successful exchange.
type Authentication struct {
	AccessToken  string             `json:"access_token"`
	ExpiresIn    int                `json:"expires_in"`
	TokenType    string             `json:"token_type"`
	Scope        string             `json:"scope"`
	RefreshToken string             `json:"refresh_token"`
	User         *AuthenticatedUser `json:"user"`
}

// authenticationHeaders builds the Authorization header for API calls,
// failing before any network activity when no access token is present.
func (c *Client) authenticationHeaders() (map[string]string, error) {
	if c.accessToken == "" {
		return nil, requests.NotAuthenticated()
	}

	return map[string]string{"Authorization": "Bearer " + c.accessToken}, nil
}

// signedClientHeaders builds the x-client-time / x-client-hash pair the
// auth endpoint verifies: the hash is the MD5 hex of the rendered time
// concatenated with the hash secret.
func (c *Client) signedClientHeaders(now time.Time) map[string]string {
	clientTime := now.UTC().Format(clientTimeFormat)
	hash := md5.Sum([]byte(clientTime + c.hashSecret)) //#nosec:G401 - pixiv's client hash is defined over MD5

	return map[string]string{
		"x-client-time": clientTime,
		"x-client-hash": hex.EncodeToString(hash[:]),
	}
}

// Authenticate exchanges a refresh token for fresh credentials and
// installs them on the client. With an empty refreshToken argument the
// client's stored refresh token is used; having neither fails before any
// network activity.
func (c *Client) Authenticate(ctx context.Context, refreshToken string) error {
	if refreshToken == "" && c.refreshToken == "" {
		return errMissingRefreshToken
	}

	if refreshToken == "" {
		refreshToken = c.refreshToken
	}

	data := requests.NewData(
		requests.FromInput("get_secure_url", 1),
		requests.FromInput("client_id", c.clientID),
		requests.FromInput("client_secret", c.clientSecret),
		requests.FromInput("grant_type", "refresh_token"),
		requests.FromInput("refresh_token", refreshToken),
	)

	return c.exchangeToken(ctx, data)
}

// AuthenticateCode exchanges a PKCE authorization code for credentials
// and installs them on the client. The code verifier must be the one
// LoginURL generated alongside the URL the code came from.
func (c *Client) AuthenticateCode(ctx context.Context, code, codeVerifier string) error {
	if code == "" || codeVerifier == "" {
		return errMissingAuthorizationCode
	}

	data := requests.NewData(
		requests.FromInput("client_id", c.clientID),
		requests.FromInput("client_secret", c.clientSecret),
		requests.FromInput("code", code),
		requests.FromInput("code_verifier", codeVerifier),
		requests.FromInput("grant_type", "authorization_code"),
		requests.FromInput("include_policy", true),
		requests.FromInput("redirect_uri", c.apiHost+loginRedirectPath),
	)

	return c.exchangeToken(ctx, data)
}

// exchangeToken posts a grant to the auth endpoint and installs the
// returned credentials. Failures split into two classes: the endpoint
// rejecting the grant, and the endpoint returning a payload this library
// does not understand.
func (c *Client) exchangeToken(ctx context.Context, data *requests.Data) error {
	payload, err := c.request(
		ctx,
		http.MethodPost,
		c.authHost+"/"+tokenEndpoint,
		nil,
		data,
		c.signedClientHeaders(time.Now()),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return &requests.PixivError{
			Message: "Could not authenticate with the given refresh token",
			Kind:    requests.ErrAuthentication,
			Err:     err,
		}
	}

	authentication, err := decodeAuthentication(payload)
	if err != nil {
		return &requests.PixivError{
			Message: "Unsupported data returned from authentication endpoint",
			Kind:    requests.ErrAuthentication,
			Err:     err,
		}
	}

	c.accessToken = authentication.AccessToken
	c.refreshToken = authentication.RefreshToken
	c.expiresIn = authentication.ExpiresIn
	c.user = authentication.User

	log.Ctx(ctx).Debug().
		Str("account", authentication.User.Account).
		Int("expires_in", authentication.ExpiresIn).
		Msg("Authenticated")

	return nil
}

func decodeAuthentication(payload []byte) (*Authentication, error) {
	authentication := &Authentication{}
	if err := decodePayload(payload, authentication); err != nil {
		return nil, err
	}

	if authentication.AccessToken == "" || authentication.RefreshToken == "" || authentication.User == nil {
		return nil, errAuthenticationShape
	}

	return authentication, nil
}

// AuthenticatedUser returns the account record of the current session,
// authenticating first when the client holds tokens but has not talked to
// the auth endpoint yet.
func (c *Client) AuthenticatedUser(ctx context.Context) (*AuthenticatedUser, error) {
	if c.user != nil {
		return c.user, nil
	}

	if !c.IsAuthenticated() {
		return nil, requests.NotAuthenticated()
	}

	if err := c.Authenticate(ctx, ""); err != nil {
		return nil, err
	}

	return c.user, nil
}

// LoginURL builds the interactive login URL for the PKCE flow. Open it in
// a browser, log in, and pass the code the callback page hands back to
// AuthenticateCode together with the returned verifier.
//
// Based on https://gist.github.com/ZipFile/c9ebedb224406f4f11845ab700124362
func (c *Client) LoginURL() (loginURL, codeVerifier string, err error) {
	verifier, challenge, err := oauthPKCE()
	if err != nil {
		return "", "", err
	}

	loginURL = fmt.Sprintf(
		"%s?code_challenge=%s&code_challenge_method=S256&client=pixiv-android",
		c.apiHost+loginPath,
		challenge,
	)

	return loginURL, verifier, nil
}

// oauthPKCE generates the verifier/challenge pair: base64url without
// padding, challenge = SHA-256 of the verifier text.
func oauthPKCE() (verifier, challenge string, err error) {
	raw := make([]byte, codeVerifierLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate code verifier: %w", err)
	}

	verifier = strings.TrimRight(base64.URLEncoding.EncodeToString(raw), "=")

	digest := sha256.Sum256([]byte(verifier))
	challenge = strings.TrimRight(base64.URLEncoding.EncodeToString(digest[:]), "=")

	return verifier, challenge, nil
}
