// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// SearchTarget selects which fields a search matches against.
type SearchTarget string

const (
	SearchTargetPartialMatchForTags SearchTarget = "partial_match_for_tags"
	SearchTargetExactMatchForTags   SearchTarget = "exact_match_for_tags"
	SearchTargetTitleAndCaption     SearchTarget = "title_and_caption"

	// SearchTargetKeyword applies to novel searches only.
	SearchTargetKeyword SearchTarget = "keyword"
)

// SearchSort orders search results.
type SearchSort string

const (
	SearchSortDateDesc SearchSort = "date_desc"
	SearchSortDateAsc  SearchSort = "date_asc"

	// SearchSortPopularDesc requires a premium account.
	SearchSortPopularDesc SearchSort = "popular_desc"
)

// SearchDuration restricts search results to a recent window.
type SearchDuration string

const (
	SearchDurationLastDay   SearchDuration = "within_last_day"
	SearchDurationLastWeek  SearchDuration = "within_last_week"
	SearchDurationLastMonth SearchDuration = "within_last_month"
)

// SearchIllustResult is a paginated illustration search response.
// SearchSpanLimit is the server-side span cap applied to the query.
type SearchIllustResult struct {
	Page

	Illusts         []Illust `json:"illusts"`
	SearchSpanLimit int      `json:"search_span_limit"`
}

func (r *SearchIllustResult) attachClient(c *Client) {
	for idx := range r.Illusts {
		r.Illusts[idx].api = c
	}
}

// SearchNovelResult is a paginated novel search response.
type SearchNovelResult struct {
	Page

	Novels          []Novel `json:"novels"`
	SearchSpanLimit int     `json:"search_span_limit"`
}

// SearchUserResult is a paginated user search response.
type SearchUserResult struct {
	Page

	UserPreviews []UserPreview `json:"user_previews"`
}

func (r *SearchUserResult) attachClient(c *Client) {
	for idx := range r.UserPreviews {
		r.UserPreviews[idx].attachClient(c)
	}
}
