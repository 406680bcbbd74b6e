// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	// Ugoira frames are JPEG or PNG; register both decoders.
	_ "image/jpeg"
	_ "image/png"

	"github.com/klauspost/compress/zip"
)

// Frame delays arrive in milliseconds; GIF timing runs in centiseconds.
const gifDelayUnit = 10

var errNoUgoiraFrames = errors.New("ugoira metadata carries no frames")

// UgoiraFrame names one frame file inside the archive and how long it
// shows, in milliseconds.
type UgoiraFrame struct {
	File  string `json:"file"`
	Delay int    `json:"delay"`
}

// UgoiraZipURLs carries the frame archive location.
type UgoiraZipURLs struct {
	Medium string `json:"medium"`
}

// UgoiraMetadata describes how to assemble a ugoira: where its frame
// archive lives and the display order and timing of the frames.
type UgoiraMetadata struct {
	ZipURLs UgoiraZipURLs `json:"zip_urls"`
	Frames  []UgoiraFrame `json:"frames"`
}

// DownloadUgoiraGIF fetches the ugoira's frame archive and assembles an
// animated GIF into sink, honoring the per-frame delays and looping
// forever. Nothing is written to sink before every frame has decoded.
func (c *Client) DownloadUgoiraGIF(ctx context.Context, illustID int, sink io.Writer) error {
	metadata, err := c.UgoiraMetadata(ctx, illustID)
	if err != nil {
		return err
	}

	return c.assembleUgoiraGIF(ctx, metadata, sink)
}

func (c *Client) assembleUgoiraGIF(ctx context.Context, metadata *UgoiraMetadata, sink io.Writer) error {
	if len(metadata.Frames) == 0 {
		return errNoUgoiraFrames
	}

	archive, err := c.Download(ctx, metadata.ZipURLs.Medium, nil)
	if err != nil {
		return err
	}

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("failed to open ugoira archive: %w", err)
	}

	animation := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(metadata.Frames)),
		Delay: make([]int, 0, len(metadata.Frames)),
	}

	for _, frame := range metadata.Frames {
		img, err := decodeArchiveImage(reader, frame.File)
		if err != nil {
			return err
		}

		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

		animation.Image = append(animation.Image, paletted)
		animation.Delay = append(animation.Delay, frame.Delay/gifDelayUnit)
	}

	if err := gif.EncodeAll(sink, animation); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}

	return nil
}

func decodeArchiveImage(reader *zip.Reader, name string) (image.Image, error) {
	file, err := reader.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ugoira archive is missing frame %s: %w", name, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", name, err)
	}

	return img, nil
}
