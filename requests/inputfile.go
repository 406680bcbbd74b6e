// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const defaultMIMEType = "application/octet-stream"

// InputFile wraps one file payload destined for a multipart upload.
//
// Construction never touches the underlying source; content is read on
// first use and cached for subsequent uses.
type InputFile struct {
	// Filename is sent as the part's file name. When left empty it is
	// derived from the MIME type, e.g. "image.png" for image/png.
	Filename string

	// MIMEType is guessed from the filename extension and falls back to
	// application/octet-stream.
	MIMEType string

	content []byte
	loaded  bool
	reader  io.Reader
	path    string
}

// NewInputFile builds an InputFile from raw content ([]byte), string
// content, an io.Reader, or an existing *InputFile (returned unchanged,
// ignoring filename). Any other type fails with ErrUnsupportedInput.
func NewInputFile(obj any, filename string) (*InputFile, error) {
	switch v := obj.(type) {
	case []byte:
		return newInputFile(v, nil, "", filename), nil
	case string:
		return newInputFile([]byte(v), nil, "", filename), nil
	case *InputFile:
		return v, nil
	case io.Reader:
		return newInputFile(nil, v, "", filename), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, obj)
	}
}

// InputFileFromPath builds an InputFile whose content is read from path
// on first use. The filename defaults to the path's base name.
func InputFileFromPath(path, filename string) *InputFile {
	if filename == "" {
		filename = filepath.Base(path)
	}

	return newInputFile(nil, nil, path, filename)
}

func newInputFile(content []byte, reader io.Reader, path, filename string) *InputFile {
	mimeType := defaultMIMEType

	if filename != "" {
		guessed, _, _ := strings.Cut(mime.TypeByExtension(filepath.Ext(filename)), ";")
		if guessed = strings.TrimSpace(guessed); guessed != "" {
			mimeType = guessed
		}
	}

	if filename == "" {
		filename = strings.ReplaceAll(mimeType, "/", ".")
	}

	return &InputFile{
		Filename: filename,
		MIMEType: mimeType,
		content:  content,
		loaded:   content != nil,
		reader:   reader,
		path:     path,
	}
}

// Content returns the file bytes, reading the underlying source on the
// first call.
func (f *InputFile) Content() ([]byte, error) {
	if f.loaded {
		return f.content, nil
	}

	switch {
	case f.reader != nil:
		content, err := io.ReadAll(f.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read file content for %s: %w", f.Filename, err)
		}

		f.content = content

	case f.path != "":
		content, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
		}

		f.content = content
	}

	f.loaded = true

	return f.content, nil
}

// part materializes the multipart entry for this file under the given
// field name.
func (f *InputFile) part(fieldName string) (FilePart, error) {
	content, err := f.Content()
	if err != nil {
		return FilePart{}, err
	}

	return FilePart{
		FieldName: fieldName,
		Filename:  f.Filename,
		Content:   content,
		MIMEType:  f.MIMEType,
	}, nil
}
