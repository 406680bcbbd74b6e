// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pixivapi

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/pixivapi/requests"
)

// maxConcurrentDownloads caps the fan-out of the bulk helpers.
const maxConcurrentDownloads = 8

// DownloadOptions tune a single download.
type DownloadOptions struct {
	// Sink receives the payload instead of buffering it in memory.
	Sink io.Writer

	// Anonymous skips the Authorization header.
	Anonymous bool
}

// DownloadManyOptions tune a bulk download.
type DownloadManyOptions struct {
	// Sinks receives the payloads, one writer per URL, instead of
	// buffering them in memory. Must match the URL count when set.
	Sinks []io.Writer

	// Anonymous skips the Authorization header.
	Anonymous bool
}

// DownloadToFileOptions tune a download to a local file.
type DownloadToFileOptions struct {
	// Dir is the destination directory, created as needed. Empty means
	// the working directory.
	Dir string

	// Filename overrides the name taken from the URL's last path
	// segment.
	Filename string

	// SkipExisting returns the destination untouched when it already
	// exists, without any network activity.
	SkipExisting bool

	// Anonymous skips the Authorization header.
	Anonymous bool
}

// DownloadResult is one finished transfer from DownloadMany.
type DownloadResult struct {
	// URL is the source that was fetched.
	URL string

	// Data holds the payload for buffered transfers; nil when the
	// payload went to a sink.
	Data []byte

	// Sink is the writer that received the payload, if one was given.
	Sink io.Writer

	// Err reports why this transfer failed. Other transfers of the
	// batch are unaffected.
	Err error
}

// DownloadFileResult is one finished transfer from DownloadManyToFile.
type DownloadFileResult struct {
	URL  string
	Path string
	Err  error
}

func (c *Client) downloadHeaders(anonymous bool) (map[string]string, error) {
	if anonymous {
		return nil, nil
	}

	return c.authenticationHeaders()
}

// Download fetches one URL through the client's transport. The payload
// goes to opts.Sink when set, otherwise it is buffered and returned.
func (c *Client) Download(ctx context.Context, rawURL string, opts *DownloadOptions) ([]byte, error) {
	if opts == nil {
		opts = &DownloadOptions{}
	}

	headers, err := c.downloadHeaders(opts.Anonymous)
	if err != nil {
		return nil, err
	}

	body, err := requests.Retrieve(ctx, c.transport, requests.RequestOptions{
		URL:     rawURL,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	if opts.Sink != nil {
		if _, err := io.Copy(opts.Sink, body); err != nil {
			return nil, fmt.Errorf("failed to write download to sink: %w", err)
		}

		return nil, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}

	return data, nil
}

// DownloadMany fans out independent downloads over the client's
// transport. Results arrive on the returned channel in completion order,
// one per URL, and the channel closes once every transfer has finished.
// The channel is buffered for the whole batch, so abandoning it does not
// strand any worker.
func (c *Client) DownloadMany(ctx context.Context, urls []string, opts *DownloadManyOptions) (<-chan DownloadResult, error) {
	if opts == nil {
		opts = &DownloadManyOptions{}
	}

	if opts.Sinks != nil && len(opts.Sinks) != len(urls) {
		return nil, fmt.Errorf("got %d sinks for %d downloads", len(opts.Sinks), len(urls))
	}

	results := make(chan DownloadResult, len(urls))

	group := &errgroup.Group{}
	group.SetLimit(maxConcurrentDownloads)

	for idx, rawURL := range urls {
		rawURL := rawURL

		var sink io.Writer
		if opts.Sinks != nil {
			sink = opts.Sinks[idx]
		}

		group.Go(func() error {
			data, err := c.Download(ctx, rawURL, &DownloadOptions{
				Sink:      sink,
				Anonymous: opts.Anonymous,
			})

			results <- DownloadResult{
				URL:  rawURL,
				Data: data,
				Sink: sink,
				Err:  err,
			}

			return nil
		})
	}

	go func() {
		_ = group.Wait()
		close(results)
	}()

	return results, nil
}

// DownloadToFile fetches one URL into a local file and returns the final
// path. The directory is created as needed; the filename defaults to the
// URL's last path segment.
func (c *Client) DownloadToFile(ctx context.Context, rawURL string, opts *DownloadToFileOptions) (string, error) {
	if opts == nil {
		opts = &DownloadToFileOptions{}
	}

	target, err := downloadTarget(rawURL, opts)
	if err != nil {
		return "", err
	}

	if opts.SkipExisting {
		if _, err := os.Stat(target); err == nil {
			return target, nil
		}
	}

	headers, err := c.downloadHeaders(opts.Anonymous)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create download directory: %w", err)
		}
	}

	body, err := requests.Retrieve(ctx, c.transport, requests.RequestOptions{
		URL:     rawURL,
		Headers: headers,
	})
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(target)

		return "", fmt.Errorf("failed to write download file: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write download file: %w", err)
	}

	return target, nil
}

// DownloadManyToFile fans out downloads into local files. Pass zero
// option sets for defaults, one to apply to every URL, or one per URL;
// any other count is rejected before any I/O.
func (c *Client) DownloadManyToFile(ctx context.Context, urls []string, opts ...DownloadToFileOptions) (<-chan DownloadFileResult, error) {
	var optsFor func(int) *DownloadToFileOptions

	switch len(opts) {
	case 0:
		optsFor = func(int) *DownloadToFileOptions { return nil }
	case 1:
		optsFor = func(int) *DownloadToFileOptions { return &opts[0] }
	case len(urls):
		optsFor = func(idx int) *DownloadToFileOptions { return &opts[idx] }
	default:
		return nil, fmt.Errorf("got %d option sets for %d downloads", len(opts), len(urls))
	}

	results := make(chan DownloadFileResult, len(urls))

	group := &errgroup.Group{}
	group.SetLimit(maxConcurrentDownloads)

	for idx, rawURL := range urls {
		rawURL := rawURL
		target := optsFor(idx)

		group.Go(func() error {
			dest, err := c.DownloadToFile(ctx, rawURL, target)

			results <- DownloadFileResult{
				URL:  rawURL,
				Path: dest,
				Err:  err,
			}

			return nil
		})
	}

	go func() {
		_ = group.Wait()
		close(results)
	}()

	return results, nil
}

func downloadTarget(rawURL string, opts *DownloadToFileOptions) (string, error) {
	filename := opts.Filename
	if filename == "" {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse download URL: %w", err)
		}

		filename = path.Base(parsed.Path)
		if filename == "." || filename == "/" {
			return "", fmt.Errorf("cannot derive a filename from %q", rawURL)
		}
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	return filepath.Join(dir, filename), nil
}
