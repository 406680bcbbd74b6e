// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

// Tag is one tag attached to a work. TranslatedName is empty when pixiv
// has no translation for the requesting language.
type Tag struct {
	Name           string `json:"name"`
	TranslatedName string `json:"translated_name"`
}

// NovelTag is a tag attached to a novel.
type NovelTag struct {
	Tag

	AddedByUploadedUser bool `json:"added_by_uploaded_user"`
}

// TrendTag is one entry of the trending-tags ranking. The tag name
// arrives under the "tag" key here, unlike everywhere else.
type TrendTag struct {
	Name           string  `json:"tag"`
	TranslatedName string  `json:"translated_name"`
	Illust         *Illust `json:"illust"`
}
