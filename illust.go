// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// IllustType discriminates the kinds of illustration the API serves
// through the same endpoints.
type IllustType string

const (
	IllustTypeIllust IllustType = "illust"
	IllustTypeManga  IllustType = "manga"
	IllustTypeUgoira IllustType = "ugoira"
)

// errDetachedIllust reports convenience methods called on an Illust that
// was decoded outside a Client.
var errDetachedIllust = errors.New("illustration is not attached to an API client")

// IllustSeries is the series reference embedded in an Illust.
type IllustSeries struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Illust is a single illustration, manga work, or ugoira. Type tells the
// three apart; ugoira frame data comes from Client.UgoiraMetadata.
type Illust struct {
	ID                   int            `json:"id"`
	Title                string         `json:"title"`
	Type                 IllustType     `json:"type"`
	ImageURLs            ImageURLs      `json:"image_urls"`
	Caption              string         `json:"caption"`
	Restrict             int            `json:"restrict"`
	User                 User           `json:"user"`
	Tags                 []Tag          `json:"tags"`
	Tools                []string       `json:"tools"`
	CreateDate           time.Time      `json:"create_date"`
	PageCount            int            `json:"page_count"`
	Width                int            `json:"width"`
	Height               int            `json:"height"`
	SanityLevel          int            `json:"sanity_level"`
	XRestrict            int            `json:"x_restrict"`
	Series               *IllustSeries  `json:"series"`
	MetaSinglePage       MetaSinglePage `json:"meta_single_page"`
	MetaPages            []MetaPage     `json:"meta_pages"`
	TotalView            int            `json:"total_view"`
	TotalBookmarks       int            `json:"total_bookmarks"`
	IsBookmarked         bool           `json:"is_bookmarked"`
	Visible              bool           `json:"visible"`
	IsMuted              bool           `json:"is_muted"`
	TotalComments        int            `json:"total_comments"`
	IllustAIType         int            `json:"illust_ai_type"`
	IllustBookStyle      int            `json:"illust_book_style"`
	CommentAccessControl int            `json:"comment_access_control"`

	api *Client
}

func (i *Illust) attachClient(c *Client) {
	i.api = c
}

// PageURLs returns one image URL per page at the requested size, in page
// order. Single-page works resolve originals through MetaSinglePage.
func (i *Illust) PageURLs(size ImageSize) []string {
	if len(i.MetaPages) == 0 {
		return []string{i.singlePageURL(size)}
	}

	urls := make([]string, len(i.MetaPages))
	for idx := range i.MetaPages {
		urls[idx] = i.pageURL(idx, size)
	}

	return urls
}

func (i *Illust) pageURL(page int, size ImageSize) string {
	if len(i.MetaPages) == 0 {
		return i.singlePageURL(size)
	}

	return i.MetaPages[page].ImageURLs.URL(size)
}

// sizedPageURLs applies the one-size-or-one-per-page rule.
func (i *Illust) sizedPageURLs(sizes []ImageSize) ([]string, error) {
	switch len(sizes) {
	case 0:
		return i.PageURLs(SizeBest), nil
	case 1:
		return i.PageURLs(sizes[0]), nil
	}

	pageCount := len(i.MetaPages)
	if pageCount == 0 {
		pageCount = 1
	}

	if len(sizes) != pageCount {
		return nil, fmt.Errorf("got %d sizes for %d pages", len(sizes), pageCount)
	}

	urls := make([]string, pageCount)
	for idx := range urls {
		urls[idx] = i.pageURL(idx, sizes[idx])
	}

	return urls, nil
}

func (i *Illust) singlePageURL(size ImageSize) string {
	if size == SizeOriginal || size == SizeBest {
		if i.MetaSinglePage.OriginalImageURL != "" {
			return i.MetaSinglePage.OriginalImageURL
		}
	}

	return i.ImageURLs.URL(size)
}

// Download fetches the first page at the requested size through the
// owning client.
func (i *Illust) Download(ctx context.Context, size ImageSize, opts *DownloadOptions) ([]byte, error) {
	if i.api == nil {
		return nil, errDetachedIllust
	}

	return i.api.Download(ctx, i.PageURLs(size)[0], opts)
}

// DownloadAll fetches every page through the owning client. Pass no
// sizes for the best available quality, one size to apply to every page,
// or one per page. Results arrive in completion order.
func (i *Illust) DownloadAll(ctx context.Context, opts *DownloadManyOptions, sizes ...ImageSize) (<-chan DownloadResult, error) {
	if i.api == nil {
		return nil, errDetachedIllust
	}

	urls, err := i.sizedPageURLs(sizes)
	if err != nil {
		return nil, err
	}

	return i.api.DownloadMany(ctx, urls, opts)
}

// DownloadToFile fetches the first page at the requested size into a
// local file through the owning client.
func (i *Illust) DownloadToFile(ctx context.Context, size ImageSize, opts *DownloadToFileOptions) (string, error) {
	if i.api == nil {
		return "", errDetachedIllust
	}

	return i.api.DownloadToFile(ctx, i.PageURLs(size)[0], opts)
}

// Illusts is a paginated illustration listing.
type Illusts struct {
	Page

	Illusts []Illust `json:"illusts"`
}

func (l *Illusts) attachClient(c *Client) {
	for idx := range l.Illusts {
		l.Illusts[idx].api = c
	}
}
