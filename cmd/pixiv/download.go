// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/pixivapi"
	"codeberg.org/pixivfe/pixivapi/configs"
)

var (
	errNothingToDownload = errors.New("nothing to download: pass --illust, --novel or --ugoira")
	errUnknownSize       = errors.New("unknown size")
	errNoWorkID          = errors.New("cannot read a work ID from argument")
)

const downloadDirPermissions = 0o755

type downloadArgs struct {
	illusts      []string
	novels       []string
	ugoiras      []string
	dir          string
	size         string
	skipExisting bool
}

var dlArgs downloadArgs

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download illustrations, novel covers and ugoira animations",
	Long: `Download pixiv works into a directory. Works are given as IDs or as
pixiv URLs; several works download concurrently.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringSliceVarP(&dlArgs.illusts, "illust", "i", nil, "illustration IDs or URLs; all pages are downloaded")
	downloadCmd.Flags().StringSliceVarP(&dlArgs.novels, "novel", "n", nil, "novel IDs or URLs; the cover image is downloaded")
	downloadCmd.Flags().StringSliceVarP(&dlArgs.ugoiras, "ugoira", "u", nil, "ugoira IDs or URLs, assembled into animated GIFs")
	downloadCmd.Flags().StringVarP(&dlArgs.dir, "dir", "d", "", "target directory (default: the configured download directory)")
	downloadCmd.Flags().StringVarP(&dlArgs.size, "size", "s", "best", "image size: original, large, medium, square_medium or best")
	downloadCmd.Flags().BoolVar(&dlArgs.skipExisting, "skip-existing", false, "skip files that already exist on disk")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	if len(dlArgs.illusts)+len(dlArgs.novels)+len(dlArgs.ugoiras) == 0 {
		return errNothingToDownload
	}

	size, err := parseImageSize(dlArgs.size)
	if err != nil {
		return err
	}

	targetDir := dlArgs.dir
	if targetDir == "" {
		targetDir = config.Global.Downloads.Directory
	}

	skipExisting := config.Global.Downloads.SkipExisting
	if cmd.Flags().Changed("skip-existing") {
		skipExisting = dlArgs.skipExisting
	}

	ctx := cmd.Context()

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	fileOptions := pixivapi.DownloadToFileOptions{
		Dir:          targetDir,
		SkipExisting: skipExisting,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.Global.Downloads.Concurrency)

	for _, raw := range dlArgs.illusts {
		raw := raw

		group.Go(func() error {
			return downloadIllustPages(groupCtx, client, raw, size, fileOptions)
		})
	}

	for _, raw := range dlArgs.novels {
		raw := raw

		group.Go(func() error {
			return downloadNovelCover(groupCtx, client, raw, size, fileOptions)
		})
	}

	for _, raw := range dlArgs.ugoiras {
		raw := raw

		group.Go(func() error {
			return downloadUgoiraGIF(groupCtx, client, raw, fileOptions)
		})
	}

	return group.Wait()
}

// downloadIllustPages fetches one illustration and downloads every page
// at the requested size.
func downloadIllustPages(
	ctx context.Context,
	client *pixivapi.Client,
	raw string,
	size pixivapi.ImageSize,
	fileOptions pixivapi.DownloadToFileOptions,
) error {
	id, err := parseWorkID(raw)
	if err != nil {
		return err
	}

	illust, err := client.Illust(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch illustration %d: %w", id, err)
	}

	results, err := client.DownloadManyToFile(ctx, illust.PageURLs(size), fileOptions)
	if err != nil {
		return fmt.Errorf("illustration %d: %w", id, err)
	}

	var failures []error

	for result := range results {
		if result.Err != nil {
			failures = append(failures, fmt.Errorf("illustration %d: %w", id, result.Err))

			continue
		}

		log.Ctx(ctx).Info().
			Int("illust_id", id).
			Str("path", result.Path).
			Msg("Downloaded page")
	}

	return errors.Join(failures...)
}

// downloadNovelCover fetches one novel and downloads its cover image.
func downloadNovelCover(
	ctx context.Context,
	client *pixivapi.Client,
	raw string,
	size pixivapi.ImageSize,
	fileOptions pixivapi.DownloadToFileOptions,
) error {
	id, err := parseWorkID(raw)
	if err != nil {
		return err
	}

	novel, err := client.NovelDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch novel %d: %w", id, err)
	}

	coverURL := novel.ImageURLs.URL(size)
	if coverURL == "" {
		return fmt.Errorf("novel %d has no %s cover: %w", id, size, pixivapi.ErrUnsupportedInput)
	}

	saved, err := client.DownloadToFile(ctx, coverURL, &fileOptions)
	if err != nil {
		return fmt.Errorf("novel %d: %w", id, err)
	}

	log.Ctx(ctx).Info().
		Int("novel_id", id).
		Str("path", saved).
		Msg("Downloaded cover")

	return nil
}

// downloadUgoiraGIF fetches one ugoira and assembles its frames into an
// animated GIF named after the work ID.
func downloadUgoiraGIF(
	ctx context.Context,
	client *pixivapi.Client,
	raw string,
	fileOptions pixivapi.DownloadToFileOptions,
) error {
	id, err := parseWorkID(raw)
	if err != nil {
		return err
	}

	dir := fileOptions.Dir
	if dir == "" {
		dir = "."
	}

	target := filepath.Join(dir, strconv.Itoa(id)+".gif")

	if fileOptions.SkipExisting {
		if _, err := os.Stat(target); err == nil {
			log.Ctx(ctx).Debug().Str("path", target).Msg("File exists, skipping")

			return nil
		}
	}

	if dir != "." {
		if err := os.MkdirAll(dir, downloadDirPermissions); err != nil {
			return fmt.Errorf("ugoira %d: failed to create download directory: %w", id, err)
		}
	}

	file, err := os.Create(target) // #nosec G304 -- the name derives from the work ID
	if err != nil {
		return fmt.Errorf("ugoira %d: %w", id, err)
	}

	if err := client.DownloadUgoiraGIF(ctx, id, file); err != nil {
		_ = file.Close()
		_ = os.Remove(target)

		return fmt.Errorf("ugoira %d: %w", id, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("ugoira %d: %w", id, err)
	}

	log.Ctx(ctx).Info().
		Int("illust_id", id).
		Str("path", target).
		Msg("Assembled ugoira GIF")

	return nil
}

// parseImageSize maps a --size flag value onto an image size.
func parseImageSize(name string) (pixivapi.ImageSize, error) {
	switch name {
	case "", "best":
		return pixivapi.SizeBest, nil
	case "original":
		return pixivapi.SizeOriginal, nil
	case "large":
		return pixivapi.SizeLarge, nil
	case "medium":
		return pixivapi.SizeMedium, nil
	case "square_medium":
		return pixivapi.SizeSquareMedium, nil
	default:
		return "", fmt.Errorf("%w %q: expected original, large, medium, square_medium or best", errUnknownSize, name)
	}
}

// parseWorkID accepts a bare numeric ID or any pixiv URL carrying one,
// like /artworks/123, /novel/show.php?id=123 or member_illust.php with
// an illust_id parameter.
func parseWorkID(raw string) (int, error) {
	if id, err := strconv.Atoi(raw); err == nil && id > 0 {
		return id, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", errNoWorkID, raw, err)
	}

	for _, key := range []string{"illust_id", "id"} {
		if value := parsed.Query().Get(key); value != "" {
			if id, err := strconv.Atoi(value); err == nil && id > 0 {
				return id, nil
			}
		}
	}

	// The last numeric path segment wins, so /en/artworks/123 works.
	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if id, err := strconv.Atoi(segments[i]); err == nil && id > 0 {
			return id, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errNoWorkID, raw)
}
