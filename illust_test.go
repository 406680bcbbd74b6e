// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func multiPageIllust() *Illust {
	return &Illust{
		ID:        2,
		PageCount: 2,
		MetaPages: []MetaPage{
			{ImageURLs: ImageURLs{
				Original: "https://i.pximg.net/img-original/img/b_p0.png",
				Medium:   "https://i.pximg.net/c/540x540_70/img-master/img/b_p0_master1200.jpg",
			}},
			{ImageURLs: ImageURLs{
				Original: "https://i.pximg.net/img-original/img/b_p1.png",
				Medium:   "https://i.pximg.net/c/540x540_70/img-master/img/b_p1_master1200.jpg",
			}},
		},
	}
}

func TestIllustPageURLs(t *testing.T) {
	t.Parallel()

	single := &Illust{
		ID:        1,
		PageCount: 1,
		ImageURLs: ImageURLs{
			Medium: "https://i.pximg.net/c/540x540_70/img-master/img/a_p0_master1200.jpg",
			Large:  "https://i.pximg.net/c/600x1200_90/img-master/img/a_p0_master1200.jpg",
		},
		MetaSinglePage: MetaSinglePage{
			OriginalImageURL: "https://i.pximg.net/img-original/img/a_p0.png",
		},
	}

	// Single-page originals live in meta_single_page, not image_urls.
	require.Equal(t,
		[]string{"https://i.pximg.net/img-original/img/a_p0.png"},
		single.PageURLs(SizeOriginal),
	)
	require.Equal(t,
		[]string{"https://i.pximg.net/img-original/img/a_p0.png"},
		single.PageURLs(SizeBest),
	)
	require.Equal(t,
		[]string{"https://i.pximg.net/c/540x540_70/img-master/img/a_p0_master1200.jpg"},
		single.PageURLs(SizeMedium),
	)

	multi := multiPageIllust()

	require.Equal(t, []string{
		"https://i.pximg.net/img-original/img/b_p0.png",
		"https://i.pximg.net/img-original/img/b_p1.png",
	}, multi.PageURLs(SizeOriginal))

	require.Equal(t, []string{
		"https://i.pximg.net/c/540x540_70/img-master/img/b_p0_master1200.jpg",
		"https://i.pximg.net/c/540x540_70/img-master/img/b_p1_master1200.jpg",
	}, multi.PageURLs(SizeMedium))
}

func TestIllustSizedPageURLs(t *testing.T) {
	t.Parallel()

	multi := multiPageIllust()

	none, err := multi.sizedPageURLs(nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://i.pximg.net/img-original/img/b_p0.png",
		"https://i.pximg.net/img-original/img/b_p1.png",
	}, none)

	one, err := multi.sizedPageURLs([]ImageSize{SizeMedium})
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://i.pximg.net/c/540x540_70/img-master/img/b_p0_master1200.jpg",
		"https://i.pximg.net/c/540x540_70/img-master/img/b_p1_master1200.jpg",
	}, one)

	perPage, err := multi.sizedPageURLs([]ImageSize{SizeOriginal, SizeMedium})
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://i.pximg.net/img-original/img/b_p0.png",
		"https://i.pximg.net/c/540x540_70/img-master/img/b_p1_master1200.jpg",
	}, perPage)

	_, err = multi.sizedPageURLs([]ImageSize{SizeOriginal, SizeMedium, SizeLarge})
	require.EqualError(t, err, "got 3 sizes for 2 pages")
}

func TestIllustDetachedDownloadHelpers(t *testing.T) {
	t.Parallel()

	illust := multiPageIllust()
	ctx := context.Background()

	_, err := illust.Download(ctx, SizeOriginal, nil)
	require.ErrorIs(t, err, errDetachedIllust)

	_, err = illust.DownloadAll(ctx, nil)
	require.ErrorIs(t, err, errDetachedIllust)

	_, err = illust.DownloadToFile(ctx, SizeOriginal, nil)
	require.ErrorIs(t, err, errDetachedIllust)
}
