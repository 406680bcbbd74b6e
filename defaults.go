// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// Version is the library version, also reported by cmd/pixiv.
const Version = "0.1.0"

// Defaults for talking to the public pixiv endpoints. The client
// credential triple identifies the official mobile app.
const (
	DefaultAPIHost  = "https://app-api.pixiv.net"
	DefaultAuthHost = "https://oauth.secure.pixiv.net"

	DefaultClientID     = "MOBrBDS8blbauoSck0ZfDbtuzpyT"
	DefaultClientSecret = "lsACyCD94FhDUtGTXi3QzcFE2uU1hqtDaKeqrdwj"                         //#nosec:G101 - false positive
	DefaultHashSecret   = "28c1fdd170a5204386cb1313c7077b34f83e4aaf4aa829ce78c231e05b0bae2c" //#nosec:G101 - false positive

	// DefaultLanguage is sent as Accept-Language unless overridden.
	DefaultLanguage = "en-us"

	loginPath         = "/web/v1/login"
	loginRedirectPath = "/web/v1/users/auth/pixiv/callback"

	tokenEndpoint = "auth/token"
)

// DefaultUserAgent identifies this library to pixiv.
const DefaultUserAgent = "pixivapi/" + Version + " (+https://codeberg.org/pixivfe/pixivapi)"
