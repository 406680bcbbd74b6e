// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pixivapi makes authenticated requests to the Pixiv app API and parses
information into structured data.

You may use this package as follows:

	package main

	import (
		"context"
		"fmt"

		"codeberg.org/pixivfe/pixivapi"
	)

	func main() {
		ctx := context.Background()

		api := pixivapi.New(pixivapi.Options{})
		if err := api.Initialize(ctx); err != nil {
			panic(err)
		}
		defer api.Shutdown()

		if err := api.Authenticate(ctx, "YOUR_REFRESH_TOKEN"); err != nil {
			panic(err)
		}

		illust, err := api.Illust(ctx, 59580629)
		if err != nil {
			panic(err)
		}
		fmt.Println(illust.Title)
	}

This package's API is ever changing, so please pin a specific version of this
package if you want to use it in your program.
*/
package pixivapi
