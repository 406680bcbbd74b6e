// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"crypto/md5" //#nosec:G501 - pixiv's client hash is defined over MD5
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const authPayload = `{
	"access_token": "access-token-value",
	"expires_in": 3600,
	"token_type": "bearer",
	"scope": "",
	"refresh_token": "refresh-token-value",
	"user": {
		"id": "123456",
		"name": "Test Artist",
		"account": "testartist",
		"mail_address": "artist@example.com",
		"is_mail_authorized": true,
		"is_premium": false,
		"x_restrict": 1,
		"profile_image_urls": {
			"px_16x16": "https://i.pximg.net/user-profile/s16.jpg",
			"px_50x50": "https://i.pximg.net/user-profile/s50.jpg",
			"px_170x170": "https://i.pximg.net/user-profile/s170.jpg"
		}
	},
	"response": {}
}`

func TestSignedClientHeaders(t *testing.T) {
	t.Parallel()

	c := New(Options{HashSecret: "test-hash-secret"})

	headers := c.signedClientHeaders(time.Date(2023, time.June, 1, 12, 30, 0, 0, time.UTC))

	if got, want := headers["x-client-time"], "2023-06-01T12:30:00+00:00"; got != want {
		t.Errorf("x-client-time = %q, want %q", got, want)
	}

	if got, want := headers["x-client-hash"], "faece12983fbbdb0f3b177ec2e886d79"; got != want {
		t.Errorf("x-client-hash = %q, want %q", got, want)
	}

	// Non-UTC clocks are rendered as UTC before signing.
	shifted := c.signedClientHeaders(time.Date(2023, time.June, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60)))
	if got, want := shifted["x-client-time"], "2023-06-01T12:30:00+00:00"; got != want {
		t.Errorf("x-client-time = %q, want %q", got, want)
	}
}

// checkTokenRequest verifies the shape of a token exchange request: the
// signed client headers and the grant fields.
func checkTokenRequest(r *http.Request, hashSecret string, wantForm url.Values) error {
	if r.Method != http.MethodPost {
		return fmt.Errorf("got method %q, want POST", r.Method)
	}

	if r.URL.Path != "/auth/token" {
		return fmt.Errorf("got path %q, want /auth/token", r.URL.Path)
	}

	clientTime := r.Header.Get("x-client-time")
	if clientTime == "" {
		return errors.New("missing x-client-time header")
	}

	sum := md5.Sum([]byte(clientTime + hashSecret)) //#nosec:G401 - pixiv's client hash is defined over MD5
	if got, want := r.Header.Get("x-client-hash"), hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("got x-client-hash %q, want %q", got, want)
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	for field, want := range wantForm {
		if got := r.PostForm[field]; !slices.Equal(got, want) {
			return fmt.Errorf("form field %q = %v, want %v", field, got, want)
		}
	}

	return nil
}

func TestAuthenticateInstallsCredentials(t *testing.T) {
	t.Parallel()

	var handlerErr error

	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++

		handlerErr = errors.Join(handlerErr, checkTokenRequest(r, "test-hash-secret", url.Values{
			"get_secure_url": {"1"},
			"client_id":      {"client-id"},
			"client_secret":  {"client-secret"},
			"grant_type":     {"refresh_token"},
			"refresh_token":  {"initial-refresh-token"},
		}))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(authPayload))
	}))
	defer server.Close()

	c := New(Options{
		AuthHost:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		HashSecret:   "test-hash-secret",
	})

	require.NoError(t, c.Authenticate(context.Background(), "initial-refresh-token"))
	require.NoError(t, handlerErr)
	require.Equal(t, 1, requestCount)

	require.True(t, c.IsAuthenticated())
	require.Equal(t, "access-token-value", c.AccessToken())
	require.Equal(t, "refresh-token-value", c.RefreshToken())
	require.Equal(t, 3600, c.ExpiresIn())

	// The account record arrived with the exchange; no extra request.
	user, err := c.AuthenticatedUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "123456", user.ID)
	require.Equal(t, "testartist", user.Account)
	require.Equal(t, 1, requestCount)
}

func TestAuthenticateCodeSendsCodeGrant(t *testing.T) {
	t.Parallel()

	var handlerErr error

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerErr = errors.Join(handlerErr, checkTokenRequest(r, DefaultHashSecret, url.Values{
			"client_id":      {DefaultClientID},
			"client_secret":  {DefaultClientSecret},
			"code":           {"authorization-code"},
			"code_verifier":  {"verifier-value"},
			"grant_type":     {"authorization_code"},
			"include_policy": {"true"},
			"redirect_uri":   {DefaultAPIHost + "/web/v1/users/auth/pixiv/callback"},
		}))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(authPayload))
	}))
	defer server.Close()

	c := New(Options{AuthHost: server.URL})

	require.NoError(t, c.AuthenticateCode(context.Background(), "authorization-code", "verifier-value"))
	require.NoError(t, handlerErr)
	require.True(t, c.IsAuthenticated())
}

func TestAuthenticatePreconditions(t *testing.T) {
	t.Parallel()

	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requestCount++

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(Options{AuthHost: server.URL})

	require.ErrorContains(t, c.Authenticate(context.Background(), ""), "refresh token must be set")
	require.ErrorContains(t, c.AuthenticateCode(context.Background(), "", "verifier"), "authorization code")
	require.ErrorContains(t, c.AuthenticateCode(context.Background(), "code", ""), "authorization code")

	require.Zero(t, requestCount)
}

func TestAuthenticateRejectedGrant(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"has_error": true, "errors": {"system": {"message": "Invalid refresh token"}}}`))
	}))
	defer server.Close()

	c := New(Options{AuthHost: server.URL})

	err := c.Authenticate(context.Background(), "expired-token")
	require.EqualError(t, err, "Could not authenticate with the given refresh token")
	require.ErrorIs(t, err, ErrAuthentication)
	require.ErrorIs(t, err, ErrBadRequest)
	require.ErrorIs(t, err, ErrNetwork)
	require.False(t, c.IsAuthenticated())
}

func TestAuthenticateRejectsUnsupportedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing refresh token and user",
			body: `{"access_token": "only-access"}`,
		},
		{
			name: "missing user",
			body: `{"access_token": "a", "refresh_token": "r", "expires_in": 3600}`,
		},
		{
			name: "empty object",
			body: `{}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(test.body))
			}))
			defer server.Close()

			c := New(Options{AuthHost: server.URL})

			err := c.Authenticate(context.Background(), "some-token")
			require.EqualError(t, err, "Unsupported data returned from authentication endpoint")
			require.ErrorIs(t, err, ErrAuthentication)
			require.False(t, c.IsAuthenticated())
		})
	}
}

func TestAuthenticateWrapsInvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	c := New(Options{AuthHost: server.URL})

	err := c.Authenticate(context.Background(), "some-token")
	require.EqualError(t, err, "Could not authenticate with the given refresh token")
	require.ErrorIs(t, err, ErrAuthentication)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestAuthenticatedUserRequiresCredentials(t *testing.T) {
	t.Parallel()

	c := New(Options{})

	_, err := c.AuthenticatedUser(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginURL(t *testing.T) {
	t.Parallel()

	c := New(Options{})

	loginURL, verifier, err := c.LoginURL()
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	require.Equal(t, "app-api.pixiv.net", parsed.Host)
	require.Equal(t, "/web/v1/login", parsed.Path)

	query := parsed.Query()
	require.Equal(t, "S256", query.Get("code_challenge_method"))
	require.Equal(t, "pixiv-android", query.Get("client"))

	// 32 bytes of entropy render as 43 base64url characters, unpadded.
	require.Len(t, verifier, 43)
	require.NotContains(t, verifier, "=")

	digest := sha256.Sum256([]byte(verifier))
	wantChallenge := strings.TrimRight(base64.URLEncoding.EncodeToString(digest[:]), "=")
	require.Equal(t, wantChallenge, query.Get("code_challenge"))

	// Each call draws a fresh verifier.
	_, second, err := c.LoginURL()
	require.NoError(t, err)
	require.NotEqual(t, verifier, second)
}
