// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// Page is embedded by list results that paginate. NextURL is the absolute
// URL of the following slice, empty on the last one; feed it to
// Client.FollowNextURL.
type Page struct {
	NextURL string `json:"next_url"`
}

// HasNext reports whether another slice follows this one.
func (p Page) HasNext() bool {
	return p.NextURL != ""
}
