// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pixivapi"
)

func TestParseWorkID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "bare ID",
			raw:  "59580629",
			want: 59580629,
		},
		{
			name: "artwork URL",
			raw:  "https://www.pixiv.net/artworks/59580629",
			want: 59580629,
		},
		{
			name: "localized artwork URL",
			raw:  "https://www.pixiv.net/en/artworks/59580629",
			want: 59580629,
		},
		{
			name: "novel show URL",
			raw:  "https://www.pixiv.net/novel/show.php?id=12438689",
			want: 12438689,
		},
		{
			name: "legacy member_illust URL",
			raw:  "https://www.pixiv.net/member_illust.php?mode=medium&illust_id=44960948",
			want: 44960948,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseWorkID(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseWorkIDRejectsUnusable(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"latest",
		"https://www.pixiv.net/ranking.php",
		"-3",
	} {
		_, err := parseWorkID(raw)
		require.ErrorIs(t, err, errNoWorkID, "input %q", raw)
	}
}

func TestParseImageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want pixivapi.ImageSize
	}{
		{name: "", want: pixivapi.SizeBest},
		{name: "best", want: pixivapi.SizeBest},
		{name: "original", want: pixivapi.SizeOriginal},
		{name: "large", want: pixivapi.SizeLarge},
		{name: "medium", want: pixivapi.SizeMedium},
		{name: "square_medium", want: pixivapi.SizeSquareMedium},
	}

	for _, tt := range tests {
		got, err := parseImageSize(tt.name)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := parseImageSize("thumbnail")
	require.ErrorIs(t, err, errUnknownSize)
}
