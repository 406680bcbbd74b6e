// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import "time"

// NovelSeries is the series reference embedded in a Novel.
type NovelSeries struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Novel is a single novel work.
type Novel struct {
	ID             int          `json:"id"`
	Title          string       `json:"title"`
	Caption        string       `json:"caption"`
	Restrict       int          `json:"restrict"`
	XRestrict      int          `json:"x_restrict"`
	IsOriginal     bool         `json:"is_original"`
	ImageURLs      ImageURLs    `json:"image_urls"`
	CreateDate     time.Time    `json:"create_date"`
	Tags           []NovelTag   `json:"tags"`
	PageCount      int          `json:"page_count"`
	TextLength     int          `json:"text_length"`
	User           User         `json:"user"`
	Series         *NovelSeries `json:"series"`
	IsBookmarked   bool         `json:"is_bookmarked"`
	TotalBookmarks int          `json:"total_bookmarks"`
	TotalView      int          `json:"total_view"`
	Visible        bool         `json:"visible"`
	TotalComments  int          `json:"total_comments"`
	IsMuted        bool         `json:"is_muted"`
	IsMyPixivOnly  bool         `json:"is_mypixiv_only"`
	IsXRestricted  bool         `json:"is_x_restricted"`
	NovelAIType    int          `json:"novel_ai_type"`
}

// Novels is a paginated novel listing.
type Novels struct {
	Page

	Novels []Novel `json:"novels"`
}

// PrivacyPolicy is the policy notice some recommendation endpoints attach
// to their payload.
type PrivacyPolicy struct {
	Version string `json:"version"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// NovelRecommended is the novel recommendation payload: the recommended
// slice plus the current ranking.
type NovelRecommended struct {
	Page

	Novels        []Novel        `json:"novels"`
	RankingNovels []Novel        `json:"ranking_novels"`
	PrivacyPolicy *PrivacyPolicy `json:"privacy_policy,omitempty"`
}
