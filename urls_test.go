// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import "testing"

func TestImageURLsSelection(t *testing.T) {
	t.Parallel()

	urls := ImageURLs{
		SquareMedium: "https://i.pximg.net/c/360x360_70/img-master/img/a_square1200.jpg",
		Medium:       "https://i.pximg.net/c/540x540_70/img-master/img/a_master1200.jpg",
		Large:        "https://i.pximg.net/c/600x1200_90/img-master/img/a_master1200.jpg",
		Original:     "https://i.pximg.net/img-original/img/a_p0.png",
	}

	tests := []struct {
		size ImageSize
		want string
	}{
		{SizeSquareMedium, urls.SquareMedium},
		{SizeMedium, urls.Medium},
		{SizeLarge, urls.Large},
		{SizeOriginal, urls.Original},
		{SizeBest, urls.Original},
		{ImageSize("bogus"), ""},
	}

	for _, test := range tests {
		t.Run(string(test.size), func(t *testing.T) {
			t.Parallel()

			if got := urls.URL(test.size); got != test.want {
				t.Errorf("URL(%q) = %q, want %q", test.size, got, test.want)
			}
		})
	}
}

func TestImageURLsBestFallsBackToLarge(t *testing.T) {
	t.Parallel()

	urls := ImageURLs{
		Medium: "https://i.pximg.net/c/540x540_70/img-master/img/a_master1200.jpg",
		Large:  "https://i.pximg.net/c/600x1200_90/img-master/img/a_master1200.jpg",
	}

	if got, want := urls.URL(SizeBest), urls.Large; got != want {
		t.Errorf("URL(best) = %q, want %q", got, want)
	}
}
