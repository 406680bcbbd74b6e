// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// ImageURLs carries the size-keyed renditions of one image. Sizes the API
// did not include are empty.
type ImageURLs struct {
	SquareMedium string `json:"square_medium"`
	Medium       string `json:"medium"`
	Large        string `json:"large"`
	Original     string `json:"original,omitempty"`
}

// ImageSize selects one rendition from an ImageURLs set.
type ImageSize string

const (
	SizeSquareMedium ImageSize = "square_medium"
	SizeMedium       ImageSize = "medium"
	SizeLarge        ImageSize = "large"
	SizeOriginal     ImageSize = "original"

	// SizeBest picks the original when present and falls back to large.
	SizeBest ImageSize = "best"
)

// URL returns the rendition for size, or "" when the API did not provide
// one.
func (u ImageURLs) URL(size ImageSize) string {
	switch size {
	case SizeSquareMedium:
		return u.SquareMedium
	case SizeMedium:
		return u.Medium
	case SizeLarge:
		return u.Large
	case SizeOriginal:
		return u.Original
	case SizeBest:
		if u.Original != "" {
			return u.Original
		}

		return u.Large
	default:
		return ""
	}
}

// MetaSinglePage carries the original URL of a single-page illustration.
// Multi-page illustrations leave it empty and use MetaPages instead.
type MetaSinglePage struct {
	OriginalImageURL string `json:"original_image_url,omitempty"`
}

// MetaPage is one page of a multi-page illustration.
type MetaPage struct {
	ImageURLs ImageURLs `json:"image_urls"`
}

// ProfileImageURLs carries a user's avatar renditions.
type ProfileImageURLs struct {
	Medium string `json:"medium"`
}

// AuthenticatedUserImageURLs carries the avatar renditions the auth
// endpoint reports, keyed by pixel size.
type AuthenticatedUserImageURLs struct {
	Px16  string `json:"px_16x16"`
	Px50  string `json:"px_50x50"`
	Px170 string `json:"px_170x170"`
}
