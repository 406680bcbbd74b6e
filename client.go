// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/pixivapi/requests"
)

var (
	errUnexpectedPayload = errors.New("unexpected API payload")
	errEmptyNextURL      = errors.New("next URL is empty")
)

// Options configure a Client. The zero value uses the package defaults
// for every field.
type Options struct {
	// AccessToken and RefreshToken seed the credential state. Leave both
	// empty to authenticate later.
	AccessToken  string
	RefreshToken string

	// Language is sent as Accept-Language on API requests.
	Language string

	// APIHost and AuthHost override the production endpoints, mainly for
	// tests.
	APIHost  string
	AuthHost string

	// ClientID, ClientSecret and HashSecret identify the client to the
	// auth endpoint.
	ClientID     string
	ClientSecret string
	HashSecret   string

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Timeout bounds each HTTP exchange end to end, body included. Zero
	// means no limit.
	Timeout time.Duration

	// Transport replaces the HTTP backend, mainly for tests. When set,
	// the default headers (Referer, User-Agent, Accept-Language) are the
	// transport's business, and Timeout is ignored.
	Transport requests.Transport
}

// Client talks to the pixiv app API.
//
// Operations are safe to call concurrently. Credential state is not
// locked; serialize Authenticate against in-flight requests yourself if
// you refresh tokens mid-session.
type Client struct {
	apiHost      string
	authHost     string
	clientID     string
	clientSecret string
	hashSecret   string

	accessToken  string
	refreshToken string
	expiresIn    int
	user         *AuthenticatedUser

	transport   requests.Transport
	initialized bool
}

// New builds a Client. Unset options fall back to the package defaults.
func New(options Options) *Client {
	c := &Client{
		apiHost:      strings.TrimRight(defaultString(options.APIHost, DefaultAPIHost), "/"),
		authHost:     strings.TrimRight(defaultString(options.AuthHost, DefaultAuthHost), "/"),
		clientID:     defaultString(options.ClientID, DefaultClientID),
		clientSecret: defaultString(options.ClientSecret, DefaultClientSecret),
		hashSecret:   defaultString(options.HashSecret, DefaultHashSecret),
		accessToken:  options.AccessToken,
		refreshToken: options.RefreshToken,
		transport:    options.Transport,
	}

	if c.transport == nil {
		transport := requests.NewHTTPTransport(map[string]string{
			"Referer":         c.apiHost,
			"User-Agent":      defaultString(options.UserAgent, DefaultUserAgent),
			"Accept-Language": defaultString(options.Language, DefaultLanguage),
		})
		if options.Timeout > 0 {
			transport.SetTimeout(options.Timeout)
		}

		c.transport = transport
	}

	return c
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

// Initialize prepares the transport and refreshes credentials when both
// tokens are already present. Calling it twice is a no-op.
func (c *Client) Initialize(ctx context.Context) error {
	if c.initialized {
		log.Ctx(ctx).Debug().Msg("This API client is already initialized")

		return nil
	}

	c.transport.Initialize()

	if c.IsAuthenticated() {
		if err := c.Authenticate(ctx, ""); err != nil {
			return err
		}
	}

	c.initialized = true

	return nil
}

// Shutdown releases the transport's resources. Calling it on an
// uninitialized client is a no-op.
func (c *Client) Shutdown() {
	if !c.initialized {
		return
	}

	c.transport.Shutdown()
	c.initialized = false
}

// IsAuthenticated reports whether both tokens are present.
func (c *Client) IsAuthenticated() bool {
	return c.accessToken != "" && c.refreshToken != ""
}

// AccessToken returns the current access token, empty before
// authentication.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// RefreshToken returns the current refresh token.
func (c *Client) RefreshToken() string {
	return c.refreshToken
}

// ExpiresIn returns the access token lifetime in seconds as reported by
// the last token exchange.
func (c *Client) ExpiresIn() int {
	return c.expiresIn
}

func (c *Client) get(ctx context.Context, endpoint string, params *requests.Data, needsAuthentication bool) ([]byte, error) {
	return c.call(ctx, http.MethodGet, endpoint, params, nil, needsAuthentication)
}

func (c *Client) post(ctx context.Context, endpoint string, data *requests.Data, needsAuthentication bool) ([]byte, error) {
	return c.call(ctx, http.MethodPost, endpoint, nil, data, needsAuthentication)
}

// call resolves an endpoint against the API host, attaches the
// Authorization header when required, and returns the validated JSON
// payload. The credential check happens before any network activity.
func (c *Client) call(
	ctx context.Context,
	method, endpoint string,
	params, data *requests.Data,
	needsAuthentication bool,
) ([]byte, error) {
	var headers map[string]string

	if needsAuthentication {
		authHeaders, err := c.authenticationHeaders()
		if err != nil {
			return nil, err
		}

		headers = authHeaders
	}

	url := c.apiHost + "/" + strings.TrimPrefix(endpoint, "/")

	return c.request(ctx, method, url, params, data, headers)
}

func (c *Client) request(
	ctx context.Context,
	method, url string,
	params, data *requests.Data,
	headers map[string]string,
) ([]byte, error) {
	return requests.ParsedRequest(ctx, c.transport, requests.RequestOptions{
		Method:  method,
		URL:     url,
		Params:  params,
		Data:    data,
		Headers: headers,
	})
}

// decodeMember unmarshals one top-level member of payload into out.
func decodeMember(payload []byte, member string, out any) error {
	result := gjson.GetBytes(payload, member)
	if !result.Exists() {
		return fmt.Errorf("%w: missing %q member", errUnexpectedPayload, member)
	}

	if err := json.Unmarshal([]byte(result.Raw), out); err != nil {
		return fmt.Errorf("failed to decode %q member: %w", member, err)
	}

	return nil
}

func decodePayload(payload []byte, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode API payload: %w", err)
	}

	return nil
}

// clientAttacher lets decoded payloads receive the owning client for
// their convenience methods.
type clientAttacher interface {
	attachClient(c *Client)
}

// FollowNextURL continues a pagination: it fetches the absolute NextURL
// of an earlier result and decodes the payload into out, which should be
// a pointer to the same result type the original operation returned.
func (c *Client) FollowNextURL(ctx context.Context, nextURL string, out any) error {
	if nextURL == "" {
		return errEmptyNextURL
	}

	headers, err := c.authenticationHeaders()
	if err != nil {
		return err
	}

	payload, err := c.request(ctx, http.MethodGet, nextURL, nil, nil, headers)
	if err != nil {
		return err
	}

	if err := decodePayload(payload, out); err != nil {
		return err
	}

	if attacher, ok := out.(clientAttacher); ok {
		attacher.attachClient(c)
	}

	return nil
}
