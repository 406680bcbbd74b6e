// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"strings"
	"time"

	"codeberg.org/pixivfe/pixivapi/requests"
)

// Endpoint paths, relative to the API host.
const (
	illustDetailPath         = "v1/illust/detail"
	illustRelatedPath        = "v2/illust/related"
	illustRecommendedPath    = "v1/illust/recommended"
	illustRankingPath        = "v1/illust/ranking"
	illustCommentsPath       = "v1/illust/comments"
	illustBookmarkDetailPath = "v2/illust/bookmark/detail"
	illustBookmarkAddPath    = "v2/illust/bookmark/add"
	illustBookmarkDeletePath = "v1/illust/bookmark/delete"
	searchIllustPath         = "v1/search/illust"
	searchNovelPath          = "v1/search/novel"
	searchUserPath           = "v1/search/user"
	trendingTagsIllustPath   = "v1/trending-tags/illust"
	userDetailPath           = "v1/user/detail"
	userIllustsPath          = "v1/user/illusts"
	userNovelsPath           = "v1/user/novels"
	userBookmarksIllustPath  = "v1/user/bookmarks/illust"
	userFollowingPath        = "v1/user/following"
	novelDetailPath          = "v2/novel/detail"
	novelRecommendedPath     = "v1/novel/recommended"
	ugoiraMetadataPath       = "v1/ugoira/metadata"
)

const rankingDateFormat = "2006-01-02"

// RankingMode selects a ranking board.
type RankingMode string

const (
	RankingDay          RankingMode = "day"
	RankingWeek         RankingMode = "week"
	RankingMonth        RankingMode = "month"
	RankingDayMale      RankingMode = "day_male"
	RankingDayFemale    RankingMode = "day_female"
	RankingWeekOriginal RankingMode = "week_original"
	RankingWeekRookie   RankingMode = "week_rookie"
	RankingDayManga     RankingMode = "day_manga"
)

// ListOptions tune paginated listings. The zero value asks for the first
// slice with the API's defaults.
type ListOptions struct {
	// Offset skips results from the top of the listing.
	Offset int

	// Extra passes raw query parameters through the parameter marshaller
	// for API fields the library does not model. Nil values are dropped.
	Extra map[string]any
}

// RankingOptions tune the ranking listing.
type RankingOptions struct {
	// Mode defaults to RankingDay.
	Mode RankingMode

	// Date selects a past board; the zero value means the current one.
	Date time.Time

	Offset int
	Extra  map[string]any
}

// SearchOptions tune work searches.
type SearchOptions struct {
	// Target defaults to SearchTargetPartialMatchForTags.
	Target SearchTarget

	// Sort defaults to SearchSortDateDesc.
	Sort SearchSort

	// Duration keeps all history when empty.
	Duration SearchDuration

	Offset int
	Extra  map[string]any
}

// UserIllustsOptions tune a user's work listing.
type UserIllustsOptions struct {
	// Type defaults to IllustTypeIllust; use IllustTypeManga for manga.
	Type IllustType

	Offset int
	Extra  map[string]any
}

// UserBookmarksOptions tune a user's bookmark listing.
type UserBookmarksOptions struct {
	// Restrict defaults to RestrictPublic. Private bookmarks are only
	// visible for the authenticated user.
	Restrict Restrict

	// MaxBookmarkID pages backwards from a bookmark ID.
	MaxBookmarkID int

	// Tag filters by a bookmark tag.
	Tag string

	Extra map[string]any
}

// FollowingOptions tune a follow listing.
type FollowingOptions struct {
	// Restrict defaults to RestrictPublic.
	Restrict Restrict

	Offset int
	Extra  map[string]any
}

func addOffset(params *requests.Data, offset int) {
	if offset > 0 {
		params.Add("offset", offset)
	}
}

func addExtra(params *requests.Data, extra map[string]any) {
	for name, value := range extra {
		params.Add(name, value)
	}
}

// Illust fetches one illustration by ID. The result carries the client,
// so its download methods work directly.
func (c *Client) Illust(ctx context.Context, illustID int) (*Illust, error) {
	params := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)

	payload, err := c.get(ctx, illustDetailPath, params, true)
	if err != nil {
		return nil, err
	}

	illust := &Illust{}
	if err := decodeMember(payload, "illust", illust); err != nil {
		return nil, err
	}

	illust.attachClient(c)

	return illust, nil
}

// IllustRelated lists works related to the given illustration.
func (c *Client) IllustRelated(ctx context.Context, illustID int, opts ListOptions) (*Illusts, error) {
	params := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	return c.illustListing(ctx, illustRelatedPath, params)
}

// IllustRecommended lists personalized recommendations.
func (c *Client) IllustRecommended(ctx context.Context, opts ListOptions) (*Illusts, error) {
	params := requests.NewData()
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	return c.illustListing(ctx, illustRecommendedPath, params)
}

// IllustRanking lists a ranking board.
func (c *Client) IllustRanking(ctx context.Context, opts RankingOptions) (*Illusts, error) {
	mode := opts.Mode
	if mode == "" {
		mode = RankingDay
	}

	params := requests.NewData(
		requests.FromInput("mode", string(mode)),
	)

	if !opts.Date.IsZero() {
		params.Add("date", opts.Date.Format(rankingDateFormat))
	}

	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	return c.illustListing(ctx, illustRankingPath, params)
}

func (c *Client) illustListing(ctx context.Context, endpoint string, params *requests.Data) (*Illusts, error) {
	payload, err := c.get(ctx, endpoint, params, true)
	if err != nil {
		return nil, err
	}

	illusts := &Illusts{}
	if err := decodePayload(payload, illusts); err != nil {
		return nil, err
	}

	illusts.attachClient(c)

	return illusts, nil
}

// IllustComments lists the comments on an illustration.
func (c *Client) IllustComments(ctx context.Context, illustID int, opts ListOptions) (*Comments, error) {
	params := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	payload, err := c.get(ctx, illustCommentsPath, params, true)
	if err != nil {
		return nil, err
	}

	comments := &Comments{}
	if err := decodePayload(payload, comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// IllustBookmarkDetail reports the authenticated user's bookmark state
// for an illustration.
func (c *Client) IllustBookmarkDetail(ctx context.Context, illustID int) (*BookmarkDetail, error) {
	params := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)

	payload, err := c.get(ctx, illustBookmarkDetailPath, params, true)
	if err != nil {
		return nil, err
	}

	detail := &BookmarkDetail{}
	if err := decodeMember(payload, "bookmark_detail", detail); err != nil {
		return nil, err
	}

	return detail, nil
}

// AddIllustBookmark bookmarks an illustration. An empty restrict means
// RestrictPublic; tags register bookmark tags alongside.
func (c *Client) AddIllustBookmark(ctx context.Context, illustID int, restrict Restrict, tags []string) error {
	if restrict == "" {
		restrict = RestrictPublic
	}

	data := requests.NewData(
		requests.FromInput("illust_id", illustID),
		requests.FromInput("restrict", string(restrict)),
	)

	// The API takes bookmark tags as one space-joined field.
	if len(tags) > 0 {
		data.Add("tags[]", strings.Join(tags, " "))
	}

	_, err := c.post(ctx, illustBookmarkAddPath, data, true)

	return err
}

// DeleteIllustBookmark removes the authenticated user's bookmark from an
// illustration.
func (c *Client) DeleteIllustBookmark(ctx context.Context, illustID int) error {
	data := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)

	_, err := c.post(ctx, illustBookmarkDeletePath, data, true)

	return err
}

// SearchIllusts searches illustrations and manga for a word.
func (c *Client) SearchIllusts(ctx context.Context, word string, opts SearchOptions) (*SearchIllustResult, error) {
	payload, err := c.get(ctx, searchIllustPath, searchParams(word, opts), true)
	if err != nil {
		return nil, err
	}

	result := &SearchIllustResult{}
	if err := decodePayload(payload, result); err != nil {
		return nil, err
	}

	result.attachClient(c)

	return result, nil
}

// SearchNovels searches novels for a word.
func (c *Client) SearchNovels(ctx context.Context, word string, opts SearchOptions) (*SearchNovelResult, error) {
	payload, err := c.get(ctx, searchNovelPath, searchParams(word, opts), true)
	if err != nil {
		return nil, err
	}

	result := &SearchNovelResult{}
	if err := decodePayload(payload, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SearchUsers searches users by name.
func (c *Client) SearchUsers(ctx context.Context, word string, opts ListOptions) (*SearchUserResult, error) {
	params := requests.NewData(
		requests.FromInput("word", word),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	payload, err := c.get(ctx, searchUserPath, params, true)
	if err != nil {
		return nil, err
	}

	result := &SearchUserResult{}
	if err := decodePayload(payload, result); err != nil {
		return nil, err
	}

	result.attachClient(c)

	return result, nil
}

func searchParams(word string, opts SearchOptions) *requests.Data {
	target := opts.Target
	if target == "" {
		target = SearchTargetPartialMatchForTags
	}

	sort := opts.Sort
	if sort == "" {
		sort = SearchSortDateDesc
	}

	params := requests.NewData(
		requests.FromInput("word", word),
		requests.FromInput("search_target", string(target)),
		requests.FromInput("sort", string(sort)),
	)

	if opts.Duration != "" {
		params.Add("duration", string(opts.Duration))
	}

	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	return params
}

// TrendingTags lists the currently trending illustration tags, each with
// a sample work.
func (c *Client) TrendingTags(ctx context.Context) ([]TrendTag, error) {
	payload, err := c.get(ctx, trendingTagsIllustPath, nil, true)
	if err != nil {
		return nil, err
	}

	var tags []TrendTag
	if err := decodeMember(payload, "trend_tags", &tags); err != nil {
		return nil, err
	}

	for idx := range tags {
		if tags[idx].Illust != nil {
			tags[idx].Illust.attachClient(c)
		}
	}

	return tags, nil
}

// UserDetail fetches a user's full profile.
func (c *Client) UserDetail(ctx context.Context, userID int) (*UserDetail, error) {
	params := requests.NewData(
		requests.FromInput("user_id", userID),
	)

	payload, err := c.get(ctx, userDetailPath, params, true)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{}
	if err := decodePayload(payload, detail); err != nil {
		return nil, err
	}

	return detail, nil
}

// UserIllusts lists a user's illustrations or manga.
func (c *Client) UserIllusts(ctx context.Context, userID int, opts UserIllustsOptions) (*Illusts, error) {
	workType := opts.Type
	if workType == "" {
		workType = IllustTypeIllust
	}

	params := requests.NewData(
		requests.FromInput("user_id", userID),
		requests.FromInput("type", string(workType)),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	return c.illustListing(ctx, userIllustsPath, params)
}

// UserNovels lists a user's novels.
func (c *Client) UserNovels(ctx context.Context, userID int, opts ListOptions) (*Novels, error) {
	params := requests.NewData(
		requests.FromInput("user_id", userID),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	payload, err := c.get(ctx, userNovelsPath, params, true)
	if err != nil {
		return nil, err
	}

	novels := &Novels{}
	if err := decodePayload(payload, novels); err != nil {
		return nil, err
	}

	return novels, nil
}

// UserBookmarks lists a user's bookmarked illustrations.
func (c *Client) UserBookmarks(ctx context.Context, userID int, opts UserBookmarksOptions) (*Illusts, error) {
	restrict := opts.Restrict
	if restrict == "" {
		restrict = RestrictPublic
	}

	params := requests.NewData(
		requests.FromInput("user_id", userID),
		requests.FromInput("restrict", string(restrict)),
	)

	if opts.MaxBookmarkID > 0 {
		params.Add("max_bookmark_id", opts.MaxBookmarkID)
	}

	if opts.Tag != "" {
		params.Add("tag", opts.Tag)
	}

	addExtra(params, opts.Extra)

	return c.illustListing(ctx, userBookmarksIllustPath, params)
}

// UserFollowing lists the users someone follows.
func (c *Client) UserFollowing(ctx context.Context, userID int, opts FollowingOptions) (*UserPreviews, error) {
	restrict := opts.Restrict
	if restrict == "" {
		restrict = RestrictPublic
	}

	params := requests.NewData(
		requests.FromInput("user_id", userID),
		requests.FromInput("restrict", string(restrict)),
	)
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	payload, err := c.get(ctx, userFollowingPath, params, true)
	if err != nil {
		return nil, err
	}

	previews := &UserPreviews{}
	if err := decodePayload(payload, previews); err != nil {
		return nil, err
	}

	previews.attachClient(c)

	return previews, nil
}

// NovelDetail fetches one novel by ID.
func (c *Client) NovelDetail(ctx context.Context, novelID int) (*Novel, error) {
	params := requests.NewData(
		requests.FromInput("novel_id", novelID),
	)

	payload, err := c.get(ctx, novelDetailPath, params, true)
	if err != nil {
		return nil, err
	}

	novel := &Novel{}
	if err := decodeMember(payload, "novel", novel); err != nil {
		return nil, err
	}

	return novel, nil
}

// NovelRecommended lists personalized novel recommendations.
func (c *Client) NovelRecommended(ctx context.Context, opts ListOptions) (*NovelRecommended, error) {
	params := requests.NewData()
	addOffset(params, opts.Offset)
	addExtra(params, opts.Extra)

	payload, err := c.get(ctx, novelRecommendedPath, params, true)
	if err != nil {
		return nil, err
	}

	recommended := &NovelRecommended{}
	if err := decodePayload(payload, recommended); err != nil {
		return nil, err
	}

	return recommended, nil
}

// UgoiraMetadata fetches the frame table and archive location of a
// ugoira.
func (c *Client) UgoiraMetadata(ctx context.Context, illustID int) (*UgoiraMetadata, error) {
	params := requests.NewData(
		requests.FromInput("illust_id", illustID),
	)

	payload, err := c.get(ctx, ugoiraMetadataPath, params, true)
	if err != nil {
		return nil, err
	}

	metadata := &UgoiraMetadata{}
	if err := decodeMember(payload, "ugoira_metadata", metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}
