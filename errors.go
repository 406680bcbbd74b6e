// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import "codeberg.org/pixivfe/pixivapi/requests"

// Classification sentinels from the requests package, re-exported so
// callers only need this package for errors.Is checks.
var (
	ErrNetwork          = requests.ErrNetwork
	ErrBadRequest       = requests.ErrBadRequest
	ErrForbidden        = requests.ErrForbidden
	ErrNotFound         = requests.ErrNotFound
	ErrInvalidResponse  = requests.ErrInvalidResponse
	ErrNotAuthenticated = requests.ErrNotAuthenticated
	ErrAuthentication   = requests.ErrAuthentication
	ErrUnsupportedInput = requests.ErrUnsupportedInput
)

// PixivError is the concrete error type most operations return.
type PixivError = requests.PixivError

// APIError is the generic error envelope the API serves.
type APIError = requests.APIError

// APIErrorDetail is the detailed error envelope the API serves.
type APIErrorDetail = requests.APIErrorDetail
