// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// Restrict is the visibility scope of a bookmark or follow.
type Restrict string

const (
	RestrictPublic  Restrict = "public"
	RestrictPrivate Restrict = "private"
)

// BookmarkDetailTag is one tag row of a bookmark detail: the tag name and
// whether the authenticated user registered it on their bookmark.
type BookmarkDetailTag struct {
	Name         string `json:"name"`
	IsRegistered bool   `json:"is_registered"`
}

// BookmarkDetail describes the authenticated user's bookmark state for
// one work.
type BookmarkDetail struct {
	IsBookmarked bool                `json:"is_bookmarked"`
	Tags         []BookmarkDetailTag `json:"tags"`
	Restrict     Restrict            `json:"restrict"`
}
