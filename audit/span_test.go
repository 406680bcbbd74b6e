// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import "testing"

func TestDestinationOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want TrafficDestination
	}{
		{"https://app-api.pixiv.net/v1/illust/detail?illust_id=1", ToAPI},
		{"https://oauth.secure.pixiv.net/auth/token", ToAuth},
		{"https://i.pximg.net/img-original/img/2024/01/01/00/00/00/1_p0.png", ToContent},
		{"http://127.0.0.1:8080/v1/illust/detail", ToContent},
		{"", ToContent},
	}

	for _, tt := range tests {
		if got := DestinationOf(tt.url); got != tt.want {
			t.Errorf("DestinationOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{2048, "2.00K"},
		{5 * bytesInMB, "5.00M"},
		{3 * bytesInGB, "3.00G"},
	}

	for _, tt := range tests {
		if got := humanizeSize(tt.size); got != tt.want {
			t.Errorf("humanizeSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
